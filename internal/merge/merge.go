// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge reconciles status-partitioned job listings into one
// normalized, de-duplicated collection and applies local patches to it.
//
// Fetching is fan-out: one request per partition, issued concurrently, and
// the merge waits for every partition to settle. A failing or malformed
// partition contributes no records; it never fails the load.
package merge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/hireboard/pkg/types"
)

// Source fetches the raw payload for one status partition. The payload may
// be a bare array of job objects or an object wrapping one under "jobs"
// or "data".
type Source interface {
	FetchPartition(ctx context.Context, status string) (json.RawMessage, error)
}

// Merger loads and reconciles partitions from a Source. It keeps no state
// between calls.
type Merger struct {
	source Source
	w      io.Writer
}

// New returns a Merger reading from source. Warnings about failed
// partitions and dropped records go to w; a nil w discards them.
func New(source Source, w io.Writer) *Merger {
	if w == nil {
		w = io.Discard
	}
	return &Merger{source: source, w: w}
}

// LoadOutput is the result of a full fetch cycle.
type LoadOutput struct {
	Records Collection

	// PartitionErrors holds one "status: error" entry per failed partition.
	PartitionErrors []string

	// DupsRemoved counts records replaced by a later occurrence of the same ID.
	DupsRemoved int

	// Dropped counts raw records skipped for lacking a usable ID.
	Dropped int
}

// AllFailed reports whether every requested partition failed, which is the
// only case where an empty collection does not mean "no jobs".
func (o LoadOutput) AllFailed(partitions int) bool {
	return partitions > 0 && len(o.PartitionErrors) == partitions
}

// LoadAll fetches every partition and returns the merged collection.
func (m *Merger) LoadAll(ctx context.Context, statuses []string) Collection {
	return m.Load(ctx, statuses).Records
}

// Load fetches every partition concurrently, waits for all of them, and
// merges the normalized records in partition order. Later duplicates
// overwrite earlier ones while keeping the position of the first
// occurrence.
func (m *Merger) Load(ctx context.Context, statuses []string) LoadOutput {
	type partitionResult struct {
		payload json.RawMessage
		err     error
	}

	results := make([]partitionResult, len(statuses))
	var wg sync.WaitGroup
	for i, status := range statuses {
		wg.Add(1)
		go func(i int, status string) {
			defer wg.Done()
			payload, err := m.source.FetchPartition(ctx, status)
			results[i] = partitionResult{payload: payload, err: err}
		}(i, status)
	}
	wg.Wait()

	var out LoadOutput
	var all []types.JobRecord
	for i, res := range results {
		status := statuses[i]
		if res.err != nil {
			out.PartitionErrors = append(out.PartitionErrors, fmt.Sprintf("%s: %v", status, res.err))
			fmt.Fprintf(m.w, "warning: partition %s failed: %v\n", status, res.err)
			continue
		}
		for _, raw := range Unwrap(res.payload) {
			r, ok := Normalize(raw)
			if !ok {
				out.Dropped++
				fmt.Fprintf(m.w, "warning: partition %s: skipping record without id\n", status)
				continue
			}
			all = append(all, r)
		}
	}

	out.Records, out.DupsRemoved = deduplicate(all)
	return out
}

// deduplicate keys records by ID. The last occurrence wins; iteration
// order follows first occurrence.
func deduplicate(records []types.JobRecord) (Collection, int) {
	seen := make(map[int64]int, len(records)) // ID → index in deduped
	deduped := make(Collection, 0, len(records))
	removed := 0

	for _, r := range records {
		if idx, ok := seen[r.ID]; ok {
			deduped[idx] = r
			removed++
			continue
		}
		seen[r.ID] = len(deduped)
		deduped = append(deduped, r)
	}
	return deduped, removed
}
