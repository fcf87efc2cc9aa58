package domain

import "time"

// Client is a company the agency recruits for.
type Client struct {
	ID           string
	OrgID        string
	Name         string
	Industry     string
	ContactName  string
	ContactEmail string
	Phone        string
	Website      string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // soft delete marker, purged by housekeeping
}
