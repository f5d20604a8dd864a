// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review owns the job review screen's view of the backend. A
// Session holds the single reconciled collection for one screen, replaces
// it wholesale on refresh, and patches it locally after each successful
// moderation call.
package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pdiddy/hireboard/internal/merge"
	"github.com/pdiddy/hireboard/pkg/types"
)

var (
	// ErrMutationRejected is returned when the API answers a mutation with
	// success=false.
	ErrMutationRejected = errors.New("mutation rejected by server")

	// ErrUnknownJob is returned when a mutation names a job that is not in
	// the current view.
	ErrUnknownJob = errors.New("job not in current view")
)

// Mutator performs moderation calls against the admin API.
type Mutator interface {
	Mutate(ctx context.Context, id int64, action types.Action, payload any) (types.MutationResult, error)
}

// Recorder journals successful decisions. Journal failures are reported as
// warnings; the decision has already happened server-side.
type Recorder interface {
	Record(ctx context.Context, jobID int64, action types.Action, reason string) error
}

// Session is the owner of one screen's collection.
type Session struct {
	merger   *merge.Merger
	mutator  Mutator
	recorder Recorder
	statuses []string
	w        io.Writer
	now      func() time.Time

	mu         sync.Mutex
	current    merge.Collection
	last       merge.LoadOutput
	generation uint64
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder journals every successful mutation to r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithWriter sends warnings to w instead of discarding them.
func WithWriter(w io.Writer) Option {
	return func(s *Session) { s.w = w }
}

// NewSession returns a session that loads statuses (in that merge order)
// through merger and sends mutations through mutator. An empty statuses
// list uses types.DefaultStatuses.
func NewSession(merger *merge.Merger, mutator Mutator, statuses []string, opts ...Option) *Session {
	if len(statuses) == 0 {
		statuses = types.DefaultStatuses
	}
	s := &Session{
		merger:   merger,
		mutator:  mutator,
		statuses: append([]string(nil), statuses...),
		w:        io.Discard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Statuses returns the partitions this session loads.
func (s *Session) Statuses() []string {
	return append([]string(nil), s.statuses...)
}

// Refresh runs a full fetch cycle and publishes the result. If another
// Refresh started after this one, this result is stale: it is returned but
// not published, and published reports false.
func (s *Session) Refresh(ctx context.Context) (out merge.LoadOutput, published bool) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	out = s.merger.Load(ctx, s.statuses)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return out, false
	}
	s.current = out.Records
	s.last = out
	return out, true
}

// Snapshot returns the current collection. Callers must not modify it.
func (s *Session) Snapshot() merge.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// LastLoad returns the most recently published load result.
func (s *Session) LastLoad() merge.LoadOutput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Buckets groups the current collection by the session's statuses.
func (s *Session) Buckets() map[string][]types.JobRecord {
	return merge.PartitionByStatus(s.Snapshot(), s.statuses)
}

// Approve approves job id and marks it approved locally.
func (s *Session) Approve(ctx context.Context, id int64) error {
	status := types.StatusApproved
	return s.mutate(ctx, id, types.ActionApprove, nil, "", func(c merge.Collection) merge.Collection {
		return merge.ApplyOptimisticPatch(c, id, types.Patch{Status: &status, ClearRejection: true})
	})
}

// Reject rejects job id with reason and annotates it locally.
func (s *Session) Reject(ctx context.Context, id int64, reason string) error {
	if reason == "" {
		return fmt.Errorf("a rejection reason is required")
	}
	status := types.StatusRejected
	rejection := &types.Rejection{Reason: reason, At: s.now().UTC()}
	payload := map[string]string{"reason": reason}
	return s.mutate(ctx, id, types.ActionReject, payload, reason, func(c merge.Collection) merge.Collection {
		return merge.ApplyOptimisticPatch(c, id, types.Patch{Status: &status, Rejection: rejection})
	})
}

// Update edits the set fields of patch on job id.
func (s *Session) Update(ctx context.Context, id int64, patch types.Patch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update for job %d", id)
	}
	return s.mutate(ctx, id, types.ActionUpdate, patch.Fields(), "", func(c merge.Collection) merge.Collection {
		return merge.ApplyOptimisticPatch(c, id, patch)
	})
}

// Delete deletes job id and drops it from the local collection.
func (s *Session) Delete(ctx context.Context, id int64) error {
	return s.mutate(ctx, id, types.ActionDelete, nil, "", func(c merge.Collection) merge.Collection {
		return merge.Remove(c, id)
	})
}

// mutate issues the call and, only on success, replaces the current
// collection with apply(current). There is no rollback: a later refresh is
// the only way to resync.
func (s *Session) mutate(ctx context.Context, id int64, action types.Action, payload any, reason string, apply func(merge.Collection) merge.Collection) error {
	if s.Snapshot().Index(id) < 0 {
		return fmt.Errorf("%s job %d: %w", action, id, ErrUnknownJob)
	}

	res, err := s.mutator.Mutate(ctx, id, action, payload)
	if err != nil {
		return fmt.Errorf("%s job %d: %w", action, id, err)
	}
	if !res.Success {
		if res.Error != "" {
			return fmt.Errorf("%s job %d: %w: %s", action, id, ErrMutationRejected, res.Error)
		}
		return fmt.Errorf("%s job %d: %w", action, id, ErrMutationRejected)
	}

	s.mu.Lock()
	s.current = apply(s.current)
	s.mu.Unlock()

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, id, action, reason); err != nil {
			fmt.Fprintf(s.w, "warning: journaling %s of job %d failed: %v\n", action, id, err)
		}
	}
	return nil
}
