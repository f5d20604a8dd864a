// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hireboard/internal/audit"
	"github.com/pdiddy/hireboard/internal/report"
	"github.com/pdiddy/hireboard/pkg/types"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the journal of moderation decisions",
	Long: `Audit reads the local journal of approvals, rejections, edits, and
deletions issued from this console.`,
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled decisions, newest first",
	RunE:  runAuditList,
}

func runAuditList(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(flagString(cmd, "format"))
	if err != nil {
		return err
	}

	cfg, err := consoleConfig()
	if err != nil {
		return err
	}
	store, err := audit.Open(cfg.Audit)
	if err != nil {
		return err
	}
	defer store.Close()

	jobID, _ := cmd.Flags().GetInt64("job")
	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(context.Background(), audit.Filter{
		JobID:  jobID,
		Action: types.Action(flagString(cmd, "action")),
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return report.AuditEntries(cmd.OutOrStdout(), entries, format)
}

func init() {
	auditListCmd.Flags().Int64("job", 0, "only decisions for this job ID")
	auditListCmd.Flags().String("action", "", "only this action: approve, reject, update, delete")
	auditListCmd.Flags().Int("limit", 50, "maximum entries (0 = all)")
	auditListCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	auditCmd.AddCommand(auditListCmd)
	rootCmd.AddCommand(auditCmd)
}
