// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hireboard/pkg/types"
)

func normalize(t *testing.T, raw string) types.JobRecord {
	t.Helper()
	r, ok := Normalize(json.RawMessage(raw))
	require.True(t, ok, "Normalize(%s) rejected the record", raw)
	return r
}

func TestNormalizeDefaults(t *testing.T) {
	r := normalize(t, `{"id":3}`)
	assert.Equal(t, defaults(3, types.DefaultStatus), r)
	assert.Nil(t, r.Rejection)
}

func TestNormalizeStatusLowerCased(t *testing.T) {
	assert.Equal(t, "pending", normalize(t, `{"id":1,"status":"Pending"}`).Status)
	assert.Equal(t, "approved", normalize(t, `{"id":1,"state":" APPROVED "}`).Status)
}

func TestNormalizeCompanyAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain string beats recruiter", `{"id":1,"company":"Acme","recruiter":{"company":"Other"}}`, "Acme"},
		{"nested object name", `{"id":1,"company":{"name":"Globex"}}`, "Globex"},
		{"company_name", `{"id":1,"company_name":"Initech"}`, "Initech"},
		{"recruiter company", `{"id":1,"recruiter":{"name":"Dana","company":"Hooli"}}`, "Hooli"},
		{"blank falls through", `{"id":1,"company":"  ","company_name":"Umbrella"}`, "Umbrella"},
		{"null falls through", `{"id":1,"company":null,"recruiter":{"company":"Vandelay"}}`, "Vandelay"},
		{"none", `{"id":1}`, types.DefaultCompany},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize(t, tt.raw).Company)
		})
	}
}

func TestNormalizeRecruiterAliases(t *testing.T) {
	assert.Equal(t, "Dana", normalize(t, `{"id":1,"recruiter":"Dana"}`).Recruiter)
	assert.Equal(t, "Sam", normalize(t, `{"id":1,"recruiter":{"name":"Sam"}}`).Recruiter)
	assert.Equal(t, "Lee", normalize(t, `{"id":1,"posted_by":"Lee"}`).Recruiter)
	assert.Equal(t, "", normalize(t, `{"id":1}`).Recruiter)
}

func TestNormalizeLocation(t *testing.T) {
	assert.Equal(t, "Lisbon", normalize(t, `{"id":1,"location":"Lisbon"}`).Location)
	assert.Equal(t, "Oslo", normalize(t, `{"id":1,"location":{"city":"Oslo"}}`).Location)
	assert.Equal(t, "remote", normalize(t, `{"id":1,"location":""}`).Location)
}

func TestNormalizeIdentity(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{`{"id":42}`, 42, true},
		{`{"id":"42"}`, 42, true},
		{`{"id":42.0}`, 42, true},
		{`{"job_id":9}`, 9, true},
		{`{"jobId":"11"}`, 11, true},
		{`{"id":"abc","job_id":5}`, 5, true},
		{`{"id":4.5}`, 0, false},
		{`{"id":1e19}`, 0, false},
		{`{"id":-1e19}`, 0, false},
		{`{"id":9223372036854775807.0}`, 0, false},
		{`{"id":4e3}`, 4000, true},
		{`{"id":0}`, 0, false},
		{`{"id":-3}`, 0, false},
		{`{"id":0,"job_id":8}`, 8, true},
		{`{"id":null}`, 0, false},
		{`{"title":"no id"}`, 0, false},
		{`[1,2]`, 0, false},
		{`"text"`, 0, false},
		{`null`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r, ok := Normalize(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, r.ID)
		})
	}
}

func TestNormalizeFields(t *testing.T) {
	r := normalize(t, `{
		"jobId": 17,
		"job_title": "Data Engineer",
		"company": {"name": "Acme"},
		"recruiter_name": "Ana",
		"status": "Rejected",
		"job_location": "Austin, TX",
		"job_type": "contract",
		"salary": 120000,
		"summary": "Pipelines.",
		"createdAt": "2026-02-03T10:00:00Z",
		"rejection": {"reason": "Duplicate posting", "at": "2026-02-04"}
	}`)

	assert.Equal(t, types.JobRecord{
		ID:             17,
		Title:          "Data Engineer",
		Company:        "Acme",
		Recruiter:      "Ana",
		Status:         "rejected",
		Location:       "Austin, TX",
		EmploymentType: "contract",
		Salary:         "120000",
		Description:    "Pipelines.",
		CreatedAt:      time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		Rejection: &types.Rejection{
			Reason: "Duplicate posting",
			At:     time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC),
		},
	}, r)
}

func TestNormalizeTimestamps(t *testing.T) {
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, want, normalize(t, `{"id":1,"created_at":"2026-01-02T03:04:05Z"}`).CreatedAt)
	assert.Equal(t, want, normalize(t, `{"id":1,"created_at":"2026-01-02 03:04:05"}`).CreatedAt)
	assert.Equal(t, want, normalize(t, `{"id":1,"posted_at":1767323045}`).CreatedAt)
	assert.Equal(t, want, normalize(t, `{"id":1,"posted_at":1767323045000}`).CreatedAt)
	assert.True(t, normalize(t, `{"id":1,"created_at":"yesterday"}`).CreatedAt.IsZero())
}

func TestNormalizeRejectionNeedsReason(t *testing.T) {
	assert.Nil(t, normalize(t, `{"id":1,"rejected_at":"2026-01-01"}`).Rejection)

	r := normalize(t, `{"id":1,"rejection_reason":"Salary missing"}`)
	require.NotNil(t, r.Rejection)
	assert.Equal(t, "Salary missing", r.Rejection.Reason)
	assert.True(t, r.Rejection.At.IsZero())
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2},
		{"jobs wrapper", `{"jobs":[{"id":1}]}`, 1},
		{"data wrapper", `{"data":[{"id":1},{"id":2},{"id":3}]}`, 3},
		{"jobs preferred over data", `{"jobs":[{"id":1}],"data":[{"id":2},{"id":3}]}`, 1},
		{"jobs not an array", `{"jobs":{"id":1},"data":[{"id":2}]}`, 1},
		{"null jobs", `{"jobs":null,"data":[{"id":2}]}`, 1},
		{"other wrapper", `{"results":[{"id":1}]}`, 0},
		{"scalar", `42`, 0},
		{"empty", ``, 0},
		{"invalid", `[{"id":1}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Unwrap(json.RawMessage(tt.payload)), tt.want)
		})
	}
}

func TestUnwrapJobsPriority(t *testing.T) {
	got := Unwrap(json.RawMessage(`{"data":[{"id":2}],"jobs":[{"id":1}]}`))
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"id":1}`, string(got[0]))
}
