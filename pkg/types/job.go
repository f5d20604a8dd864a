// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the hireboard console:
// the canonical job record produced by reconciliation, the patches applied
// to it between fetches, the mutation contract with the admin API, and the
// console configuration.
package types

import "time"

// Job status labels used by the admin review screens. Status values coming
// from the backend are lower-cased before comparison, so these are the only
// spellings the console ever stores.
const (
	StatusDraft    = "draft"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Defaults applied when none of a field's aliases resolve.
const (
	DefaultStatus         = StatusDraft
	DefaultLocation       = "remote"
	DefaultTitle          = "Untitled position"
	DefaultCompany        = "Unknown company"
	DefaultEmploymentType = "full-time"
)

// JobRecord is the normalized, schema-stable view of a job posting.
// Every JobRecord in a collection has a unique, positive ID that stays the
// same across repeated fetches of the same posting.
type JobRecord struct {
	// ID is the backend identity of the posting.
	ID int64 `json:"id" yaml:"id"`

	// Title is the posted position title.
	Title string `json:"title" yaml:"title"`

	// Company is the owner label shown next to the title.
	Company string `json:"company" yaml:"company"`

	// Recruiter is the name of the recruiter who posted the job, if known.
	Recruiter string `json:"recruiter,omitempty" yaml:"recruiter,omitempty"`

	// Status is the lower-cased review status (draft, pending, approved, rejected).
	Status string `json:"status" yaml:"status"`

	// Location is a free-text location; "remote" when the backend omits it.
	Location string `json:"location" yaml:"location"`

	// EmploymentType is e.g. "full-time", "contract", "internship".
	EmploymentType string `json:"employment_type" yaml:"employment_type"`

	// Salary is a free-text salary or salary range.
	Salary string `json:"salary,omitempty" yaml:"salary,omitempty"`

	// Description is the posting body.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// CreatedAt is when the posting was created; zero when unknown.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Rejection is set when a reviewer rejected the posting.
	Rejection *Rejection `json:"rejection,omitempty" yaml:"rejection,omitempty"`
}

// Rejection annotates a rejected posting with the reviewer's reason.
type Rejection struct {
	Reason string    `json:"reason" yaml:"reason"`
	At     time.Time `json:"at,omitempty" yaml:"at,omitempty"`
}

// Patch is a shallow update to a JobRecord. Nil fields are left untouched.
// A non-nil Rejection replaces the existing annotation; ClearRejection
// removes it.
type Patch struct {
	Title          *string
	Company        *string
	Recruiter      *string
	Status         *string
	Location       *string
	EmploymentType *string
	Salary         *string
	Description    *string
	Rejection      *Rejection
	ClearRejection bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Company == nil && p.Recruiter == nil &&
		p.Status == nil && p.Location == nil && p.EmploymentType == nil &&
		p.Salary == nil && p.Description == nil && p.Rejection == nil &&
		!p.ClearRejection
}

// Apply returns a copy of r with the set fields of p merged in.
func (p Patch) Apply(r JobRecord) JobRecord {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Company != nil {
		r.Company = *p.Company
	}
	if p.Recruiter != nil {
		r.Recruiter = *p.Recruiter
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.EmploymentType != nil {
		r.EmploymentType = *p.EmploymentType
	}
	if p.Salary != nil {
		r.Salary = *p.Salary
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.ClearRejection {
		r.Rejection = nil
	}
	if p.Rejection != nil {
		rej := *p.Rejection
		r.Rejection = &rej
	}
	return r
}

// Fields returns the changed fields keyed by their JSON names. It is the
// body of an edit request.
func (p Patch) Fields() map[string]any {
	fields := make(map[string]any)
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	set("title", p.Title)
	set("company", p.Company)
	set("recruiter", p.Recruiter)
	set("status", p.Status)
	set("location", p.Location)
	set("employment_type", p.EmploymentType)
	set("salary", p.Salary)
	set("description", p.Description)
	return fields
}

// Action names a mutating call against the admin API.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
)

// MutationResult is the admin API's answer to a mutating call.
type MutationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
