// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders job collections and audit entries for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hireboard/internal/audit"
	"github.com/pdiddy/hireboard/internal/merge"
	"github.com/pdiddy/hireboard/pkg/types"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format flag value. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use table, json, or yaml", s)
	}
}

// Summary counts jobs per status and lists failed partitions.
type Summary struct {
	Total           int            `json:"total" yaml:"total"`
	ByStatus        map[string]int `json:"by_status" yaml:"by_status"`
	PartitionErrors []string       `json:"partition_errors,omitempty" yaml:"partition_errors,omitempty"`
	DupsRemoved     int            `json:"duplicates_removed" yaml:"duplicates_removed"`
}

// Summarize builds a Summary for the given statuses.
func Summarize(out merge.LoadOutput, statuses []string) Summary {
	s := Summary{
		Total:           len(out.Records),
		ByStatus:        make(map[string]int, len(statuses)),
		PartitionErrors: out.PartitionErrors,
		DupsRemoved:     out.DupsRemoved,
	}
	for status, bucket := range merge.PartitionByStatus(out.Records, statuses) {
		s.ByStatus[status] = len(bucket)
	}
	return s
}

// Jobs writes records in the given format.
func Jobs(w io.Writer, records []types.JobRecord, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No jobs found.")
		return nil
	}

	fmt.Fprintf(w, "%-6s  %-36s  %-20s  %-9s  %-14s  %s\n",
		"ID", "Title", "Company", "Status", "Location", "Created")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for _, r := range records {
		created := ""
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-6d  %-36s  %-20s  %-9s  %-14s  %s\n",
			r.ID, truncate(r.Title, 36), truncate(r.Company, 20), r.Status,
			truncate(r.Location, 14), created)
		if r.Rejection != nil {
			fmt.Fprintf(w, "        rejected: %s\n", r.Rejection.Reason)
		}
	}

	fmt.Fprintf(w, "\n%d jobs\n", len(records))
	return nil
}

// WriteSummary writes s in the given format. Table output lists statuses
// in the order given.
func WriteSummary(w io.Writer, s Summary, statuses []string, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	}

	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		key := strings.ToLower(strings.TrimSpace(status))
		parts = append(parts, fmt.Sprintf("%s: %d", key, s.ByStatus[key]))
	}
	fmt.Fprintf(w, "%d jobs (%s)", s.Total, strings.Join(parts, ", "))
	if s.DupsRemoved > 0 {
		fmt.Fprintf(w, ", %d duplicates merged", s.DupsRemoved)
	}
	fmt.Fprintln(w)
	for _, e := range s.PartitionErrors {
		fmt.Fprintf(w, "unavailable: %s\n", e)
	}
	return nil
}

// AuditEntries writes journal entries in the given format.
func AuditEntries(w io.Writer, entries []audit.Entry, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatYAML:
		return writeYAML(w, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No decisions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-6s  %-6s  %-8s  %-20s  %-20s  %s\n",
		"Seq", "Job", "Action", "Actor", "Decided", "Reason")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range entries {
		fmt.Fprintf(w, "%-6d  %-6d  %-8s  %-20s  %-20s  %s\n",
			e.Seq, e.JobID, e.Action, truncate(e.Actor, 20),
			e.DecidedAt.Format("2006-01-02 15:04"), e.Reason)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
