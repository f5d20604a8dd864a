// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"strings"

	"github.com/pdiddy/hireboard/pkg/types"
)

// Collection is an ordered set of job records with unique IDs. Functions
// in this package treat it as a value: they return a new slice instead of
// writing into the one they were given.
type Collection []types.JobRecord

// Index returns the position of id, or -1.
func (c Collection) Index(id int64) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the record with the given id.
func (c Collection) Get(id int64) (types.JobRecord, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return types.JobRecord{}, false
}

// IDs returns the record IDs in collection order.
func (c Collection) IDs() []int64 {
	ids := make([]int64, len(c))
	for i := range c {
		ids[i] = c[i].ID
	}
	return ids
}

// ApplyOptimisticPatch returns a collection where the record with id has
// patch merged into it. Other records and the order are unchanged. An
// unknown id returns c as is; a stale reference from the UI is not an error.
func ApplyOptimisticPatch(c Collection, id int64, patch types.Patch) Collection {
	i := c.Index(id)
	if i < 0 {
		return c
	}
	out := make(Collection, len(c))
	copy(out, c)
	out[i] = patch.Apply(out[i])
	return out
}

// Remove returns a collection without the record with id. An unknown id
// returns c as is.
func Remove(c Collection, id int64) Collection {
	i := c.Index(id)
	if i < 0 {
		return c
	}
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...)
}

// PartitionByStatus groups records by status. Every requested status gets
// a bucket, possibly empty, keyed by its lower-cased label. Records whose
// status was not requested appear in no bucket.
func PartitionByStatus(c Collection, statuses []string) map[string][]types.JobRecord {
	buckets := make(map[string][]types.JobRecord, len(statuses))
	for _, s := range statuses {
		key := strings.ToLower(strings.TrimSpace(s))
		if _, ok := buckets[key]; !ok {
			buckets[key] = []types.JobRecord{}
		}
	}
	for _, r := range c {
		if bucket, ok := buckets[r.Status]; ok {
			buckets[r.Status] = append(bucket, r)
		}
	}
	return buckets
}
