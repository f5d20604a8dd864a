// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit journals the moderation decisions issued from this console
// in a local SQLite database. It records what a reviewer did, not the job
// listings themselves.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/hireboard/pkg/types"
)

const dbFile = "audit.db"

// Entry is one journaled decision.
type Entry struct {
	Seq       int64        `json:"seq" yaml:"seq"`
	JobID     int64        `json:"job_id" yaml:"job_id"`
	Action    types.Action `json:"action" yaml:"action"`
	Reason    string       `json:"reason,omitempty" yaml:"reason,omitempty"`
	Actor     string       `json:"actor" yaml:"actor"`
	DecidedAt time.Time    `json:"decided_at" yaml:"decided_at"`
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	JobID  int64
	Action types.Action
	Limit  int
}

// Store is the decision journal.
type Store struct {
	db    *sql.DB
	actor string
	now   func() time.Time
}

// Open opens or creates the journal at cfg.Dir/audit.db.
func Open(cfg types.AuditConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	actor := cfg.Actor
	if actor == "" {
		actor = "unknown"
	}
	s := &Store{db: db, actor: actor, now: time.Now}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating audit schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS decisions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id INTEGER NOT NULL,
			action TEXT NOT NULL,
			reason TEXT,
			actor TEXT NOT NULL,
			decided_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_job_id ON decisions(job_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends a decision for jobID by the configured actor.
func (s *Store) Record(ctx context.Context, jobID int64, action types.Action, reason string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decisions (job_id, action, reason, actor, decided_at) VALUES (?, ?, ?, ?, ?)`,
		jobID, string(action), reason, s.actor, s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s of job %d: %w", action, jobID, err)
	}
	return nil
}

// List returns journaled decisions, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	query := `SELECT seq, job_id, action, COALESCE(reason, ''), actor, decided_at FROM decisions WHERE 1=1`
	var args []any
	if f.JobID != 0 {
		query += ` AND job_id = ?`
		args = append(args, f.JobID)
	}
	if f.Action != "" {
		query += ` AND action = ?`
		args = append(args, string(f.Action))
	}
	query += ` ORDER BY seq DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var action, decidedAt string
		if err := rows.Scan(&e.Seq, &e.JobID, &action, &e.Reason, &e.Actor, &decidedAt); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		e.Action = types.Action(action)
		if t, err := time.Parse(time.RFC3339Nano, decidedAt); err == nil {
			e.DecidedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
