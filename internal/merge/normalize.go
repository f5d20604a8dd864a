// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/hireboard/pkg/types"
)

// aliases maps each canonical field to the JSON paths that may carry it,
// highest priority first. A path is a dot-separated walk through nested
// objects. The first path that yields a usable value wins.
var aliases = map[string][]string{
	"id":              {"id", "job_id", "jobId"},
	"title":           {"title", "job_title", "position"},
	"company":         {"company", "company.name", "company_name", "recruiter.company"},
	"recruiter":       {"recruiter", "recruiter.name", "recruiter_name", "posted_by"},
	"status":          {"status", "state"},
	"location":        {"location", "location.city", "job_location"},
	"employment_type": {"employment_type", "type", "job_type"},
	"salary":          {"salary", "salary_range"},
	"description":     {"description", "summary"},
	"created_at":      {"created_at", "createdAt", "posted_at"},
	"rejection":       {"rejection_reason", "rejectionReason", "rejection.reason"},
	"rejected_at":     {"rejected_at", "rejection.at"},
}

// timeLayouts are tried in order when a timestamp arrives as a string.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize projects one raw backend record onto a JobRecord. It reports
// false when the payload is not an object or carries no usable integer
// identity; such records cannot take part in a collection.
func Normalize(raw json.RawMessage) (types.JobRecord, bool) {
	obj, ok := decodeObject(raw)
	if !ok {
		return types.JobRecord{}, false
	}

	id, ok := resolveID(obj)
	if !ok {
		return types.JobRecord{}, false
	}

	r := types.JobRecord{
		ID:             id,
		Title:          textOr(obj, "title", types.DefaultTitle),
		Company:        textOr(obj, "company", types.DefaultCompany),
		Recruiter:      textOr(obj, "recruiter", ""),
		Status:         strings.ToLower(textOr(obj, "status", types.DefaultStatus)),
		Location:       textOr(obj, "location", types.DefaultLocation),
		EmploymentType: textOr(obj, "employment_type", types.DefaultEmploymentType),
		Salary:         textOr(obj, "salary", ""),
		Description:    textOr(obj, "description", ""),
		CreatedAt:      timeOf(obj, "created_at"),
	}

	if reason := textOr(obj, "rejection", ""); reason != "" {
		r.Rejection = &types.Rejection{
			Reason: reason,
			At:     timeOf(obj, "rejected_at"),
		}
	}
	return r, true
}

// Unwrap extracts the record array from a partition payload. It accepts a
// bare array, an object with a "jobs" array, or an object with a "data"
// array, in that order. Any other shape yields no records.
func Unwrap(payload json.RawMessage) []json.RawMessage {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return nil
		}
		return arr
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil
		}
		for _, key := range []string{"jobs", "data"} {
			v, ok := wrapper[key]
			if !ok {
				continue
			}
			var arr []json.RawMessage
			if err := json.Unmarshal(v, &arr); err == nil && arr != nil {
				return arr
			}
		}
	}
	return nil
}

func decodeObject(raw json.RawMessage) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// lookup walks a dotted path through nested objects. A null value counts
// as absent.
func lookup(obj map[string]any, path string) (any, bool) {
	var cur any = obj
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// textOr returns the first non-blank string or number found under the
// field's aliases, or fallback. Objects and arrays never match, so a
// nested "company" object falls through to "company.name".
func textOr(obj map[string]any, field, fallback string) string {
	for _, path := range aliases[field] {
		v, ok := lookup(obj, path)
		if !ok {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = strings.TrimSpace(t)
		case json.Number:
			s = t.String()
		default:
			continue
		}
		if s != "" {
			return s
		}
	}
	return fallback
}

func resolveID(obj map[string]any) (int64, bool) {
	for _, path := range aliases["id"] {
		v, ok := lookup(obj, path)
		if !ok {
			continue
		}
		if id, ok := toInt64(v); ok && id > 0 {
			return id, true
		}
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		// 1<<63 is the first float64 past MaxInt64.
		if f < math.MinInt64 || f >= 1<<63 {
			return 0, false
		}
		return int64(f), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// timeOf parses the first resolvable timestamp. Numbers are Unix seconds,
// or milliseconds when too large to be seconds.
func timeOf(obj map[string]any, field string) time.Time {
	for _, path := range aliases[field] {
		v, ok := lookup(obj, path)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			for _, layout := range timeLayouts {
				if ts, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
					return ts.UTC()
				}
			}
		case json.Number:
			n, err := t.Int64()
			if err != nil {
				continue
			}
			if n > 1e12 {
				return time.UnixMilli(n).UTC()
			}
			return time.Unix(n, 0).UTC()
		}
	}
	return time.Time{}
}
