// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hireboard admin console CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hireboard/internal/secrets"
	"github.com/pdiddy/hireboard/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

var rootCmd = &cobra.Command{
	Use:   "hireboard",
	Short: "Admin console for reviewing job postings",
	Long: `hireboard is the admin console for the recruiting platform. It loads job
postings from the admin API by review status, merges them into one view,
and approves, rejects, edits, or deletes postings.

Configuration is read from hireboard.yaml (current directory or
~/.config/hireboard/), HIREBOARD_* environment variables, and flags.
The API token may also be stored in .secrets/admin-api-token.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./hireboard.yaml or ~/.config/hireboard/hireboard.yaml)")
	pf.String("api-url", "", "admin API base URL")
	pf.String("api-token", "", "admin API bearer token")
	pf.Duration("timeout", 0, "HTTP request timeout (default 30s)")
	pf.String("audit-dir", "", "directory for the decision journal (default .hireboard)")

	viper.BindPFlag("api.base_url", pf.Lookup("api-url"))
	viper.BindPFlag("api.token", pf.Lookup("api-token"))
	viper.BindPFlag("api.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("audit.dir", pf.Lookup("audit-dir"))

	viper.SetDefault("api.base_url", "")
	viper.SetDefault("api.token", "")
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("api.user_agent", "hireboard/"+version)
	viper.SetDefault("api.max_retries", 3)
	viper.SetDefault("review.statuses", types.DefaultStatuses)
	viper.SetDefault("audit.dir", ".hireboard")
	viper.SetDefault("audit.actor", "")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hireboard")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hireboard"))
		}
	}

	viper.SetEnvPrefix("HIREBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// consoleConfig assembles the effective configuration. Flags and config
// values win over the secrets directory.
func consoleConfig() (types.ConsoleConfig, error) {
	var cfg types.ConsoleConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.API.Token = loadedSecrets.Get(secrets.APIToken, cfg.API.Token)
	cfg.Audit.Actor = loadedSecrets.Get(secrets.Actor, cfg.Audit.Actor)
	if cfg.Audit.Actor == "" {
		cfg.Audit.Actor = os.Getenv("USER")
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
