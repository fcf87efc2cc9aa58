package domain

import "time"

// JobStatus tracks whether a role is accepting applications.
type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobOnHold JobStatus = "on_hold"
	JobClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobOnHold, JobClosed:
		return true
	}
	return false
}

// Job is an open role at a client.
type Job struct {
	ID          string
	OrgID       string
	ClientID    string
	Title       string
	Description string
	Location    string
	Status      JobStatus
	SalaryMin   int64 // annual, in whole currency units; 0 means unspecified
	SalaryMax   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
