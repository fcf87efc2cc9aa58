package domain

import "time"

type Organization struct {
	ID        string
	Name      string
	Slug      string // URL-safe unique identifier, derived from the name
	CreatedAt time.Time
	UpdatedAt time.Time
}
