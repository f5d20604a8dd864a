// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hireboard/internal/apiclient"
	"github.com/pdiddy/hireboard/internal/audit"
	"github.com/pdiddy/hireboard/internal/merge"
	"github.com/pdiddy/hireboard/internal/report"
	"github.com/pdiddy/hireboard/internal/review"
	"github.com/pdiddy/hireboard/pkg/types"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Review job postings (list, approve, reject, edit, delete)",
	Long: `Jobs loads postings from the admin API, one request per review status,
and merges them into a single de-duplicated view. Moderation subcommands
load the view first, send the change, and print the updated posting.`,
}

// --- list subcommand ---

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List job postings grouped by review status",
	RunE:  runJobsList,
}

func runJobsList(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(flagString(cmd, "format"))
	if err != nil {
		return err
	}

	sess, closeFn, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	out, _ := sess.Refresh(context.Background())
	statuses := sess.Statuses()
	if out.AllFailed(len(statuses)) {
		return fmt.Errorf("admin API unavailable: all %d status queries failed", len(statuses))
	}

	w := cmd.OutOrStdout()
	if summaryOnly, _ := cmd.Flags().GetBool("summary"); summaryOnly {
		return report.WriteSummary(w, report.Summarize(out, statuses), statuses, format)
	}

	records := sess.Snapshot()
	if only := strings.ToLower(flagString(cmd, "only")); only != "" {
		bucket, ok := sess.Buckets()[only]
		if !ok {
			return fmt.Errorf("status %q was not loaded: use --status to include it", only)
		}
		records = bucket
	}
	if err := report.Jobs(w, records, format); err != nil {
		return err
	}
	if format == report.FormatTable {
		return report.WriteSummary(os.Stderr, report.Summarize(out, statuses), statuses, format)
	}
	return nil
}

// --- moderation subcommands ---

var jobsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return moderate(cmd, args[0], func(ctx context.Context, s *review.Session, id int64) error {
			return s.Approve(ctx, id)
		})
	},
}

var jobsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a job posting with a reason",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		return moderate(cmd, args[0], func(ctx context.Context, s *review.Session, id int64) error {
			return s.Reject(ctx, id, reason)
		})
	},
}

var jobsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := patchFromFlags(cmd)
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to edit: set at least one field flag")
		}
		return moderate(cmd, args[0], func(ctx context.Context, s *review.Session, id int64) error {
			return s.Update(ctx, id, patch)
		})
	},
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return moderate(cmd, args[0], func(ctx context.Context, s *review.Session, id int64) error {
			if err := s.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted job %d\n", id)
			return nil
		})
	},
}

// moderate loads the current view, applies op, and prints the posting as
// it now stands locally.
func moderate(cmd *cobra.Command, rawID string, op func(context.Context, *review.Session, int64) error) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid job id %q", rawID)
	}

	sess, closeFn, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := context.Background()
	if out, _ := sess.Refresh(ctx); out.AllFailed(len(sess.Statuses())) {
		return fmt.Errorf("admin API unavailable: cannot load job %d", id)
	}
	if err := op(ctx, sess, id); err != nil {
		return err
	}

	if r, ok := sess.Snapshot().Get(id); ok {
		return report.Jobs(cmd.OutOrStdout(), []types.JobRecord{r}, report.FormatTable)
	}
	return nil
}

func patchFromFlags(cmd *cobra.Command) types.Patch {
	var p types.Patch
	for flag, dst := range map[string]**string{
		"title":       &p.Title,
		"company":     &p.Company,
		"location":    &p.Location,
		"type":        &p.EmploymentType,
		"salary":      &p.Salary,
		"description": &p.Description,
	} {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			*dst = &v
		}
	}
	return p
}

// --- shared helpers ---

// openSession wires the API client, merger, journal, and session for one
// command run. The returned func closes the journal.
func openSession(cmd *cobra.Command) (*review.Session, func(), error) {
	cfg, err := consoleConfig()
	if err != nil {
		return nil, nil, err
	}
	if statuses := statusFlag(cmd); len(statuses) > 0 {
		cfg.Review.Statuses = statuses
	}
	cfg.Review.Statuses = cleanStatuses(cfg.Review.Statuses)

	client, err := apiclient.New(cfg.API, nil)
	if err != nil {
		return nil, nil, err
	}

	store, err := audit.Open(cfg.Audit)
	if err != nil {
		return nil, nil, err
	}

	merger := merge.New(client, os.Stderr)
	sess := review.NewSession(merger, client, cfg.Review.Statuses,
		review.WithRecorder(store),
		review.WithWriter(os.Stderr),
	)
	return sess, func() { store.Close() }, nil
}

// statusFlag returns the --status labels trimmed, with blanks dropped.
func statusFlag(cmd *cobra.Command) []string {
	raw, _ := cmd.Flags().GetStringSlice("status")
	return cleanStatuses(raw)
}

func cleanStatuses(raw []string) []string {
	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func init() {
	jobsCmd.PersistentFlags().StringSlice("status", nil, "review statuses to load, in merge order (default pending,approved,rejected)")

	jobsListCmd.Flags().String("format", "table", "output format: table, json, or yaml")
	jobsListCmd.Flags().String("only", "", "show only postings with this status")
	jobsListCmd.Flags().Bool("summary", false, "print counts per status instead of postings")

	jobsRejectCmd.Flags().String("reason", "", "reason shown to the recruiter (required)")
	jobsRejectCmd.MarkFlagRequired("reason")

	jobsEditCmd.Flags().String("title", "", "new title")
	jobsEditCmd.Flags().String("company", "", "new company name")
	jobsEditCmd.Flags().String("location", "", "new location")
	jobsEditCmd.Flags().String("type", "", "new employment type")
	jobsEditCmd.Flags().String("salary", "", "new salary or range")
	jobsEditCmd.Flags().String("description", "", "new description")

	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsApproveCmd)
	jobsCmd.AddCommand(jobsRejectCmd)
	jobsCmd.AddCommand(jobsEditCmd)
	jobsCmd.AddCommand(jobsDeleteCmd)

	rootCmd.AddCommand(jobsCmd)
}
