// Package model defines shared data structures for the job board.
package model

import (
	"fmt"
	"time"
)

// JobType values mirror the job_type column in PostgreSQL.
type JobType string

const (
	TypeFullTime   JobType = "FullTime"
	TypePartTime   JobType = "PartTime"
	TypeContract   JobType = "Contract"
	TypeInternship JobType = "Internship"
	TypeTemporary  JobType = "Temporary"
)

// ParseJobType converts a raw string to a JobType, returning an error for
// unknown values.
func ParseJobType(s string) (JobType, error) {
	t := JobType(s)
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship, TypeTemporary:
		return t, nil
	}
	return "", fmt.Errorf("unknown job type %q", s)
}

// Job is the canonical posting persisted in the jobs table.
// Rows are created by the aggregator during ingestion (or via the manual
// test endpoint) and are never mutated by the ingestion path afterwards.
type Job struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	CompanyLogo *string    `json:"companyLogo"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	IsRemote    bool       `json:"isRemote"`
	Salary      *string    `json:"salary"`
	Type        JobType    `json:"type"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	ApplyURL    *string    `json:"applyUrl"`
	Source      string     `json:"source"`
	IsActive    bool       `json:"isActive"`
	PostedDate  time.Time  `json:"postedDate"`
	ExpiresDate *time.Time `json:"expiresDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// ExternalID pairs with Source for duplicate prevention. Nil for
	// manually created jobs.
	ExternalID *string `json:"externalId,omitempty"`
}

// ExternalJob is a normalised posting fetched from the external provider.
// It lives only for the duration of one aggregation pass — the aggregator
// converts it to a Job before anything is persisted.
type ExternalJob struct {
	ExternalID  string
	Title       string
	Company     string
	CompanyLogo *string
	Description string
	Location    string
	IsRemote    bool
	Salary      *string
	Type        JobType
	ApplyURL    *string
	PostedDate  time.Time
	Source      string
}

// JobFilter carries the query-string filters for job listings.
type JobFilter struct {
	Category string
	Location string
	Type     string
	Search   string
	Page     int
	PageSize int
}

// JobResponse is the JSON shape returned to clients. Description is
// truncated to a summary in list responses.
type JobResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	CompanyLogo *string   `json:"companyLogo"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	IsRemote    bool      `json:"isRemote"`
	Salary      *string   `json:"salary"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	ApplyURL    *string   `json:"applyUrl"`
	Source      string    `json:"source"`
	PostedDate  time.Time `json:"postedDate"`
	PostedAgo   string    `json:"postedAgo"`
}

// JobList is a paginated page of job listings.
type JobList struct {
	Jobs       []JobResponse `json:"jobs"`
	TotalCount int           `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// TimeAgo renders a posting age for display ("3d ago", "5h ago", …).
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d >= time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d >= time.Minute:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return "Just now"
}
