package domain

import "time"

// Application links a candidate to a job and tracks their progress through
// the pipeline. A candidate has at most one live application per job.
type Application struct {
	ID             string
	OrgID          string
	JobID          string
	CandidateID    string
	Stage          Stage
	RejectedReason string // only meaningful when Stage is rejected
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
