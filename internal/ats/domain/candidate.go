package domain

import "time"

type Candidate struct {
	ID        string
	OrgID     string
	Name      string
	Email     string
	Phone     string
	Location  string
	Skills    []string
	Summary   string
	ResumeURL string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
