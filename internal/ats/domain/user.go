package domain

import "time"

type User struct {
	ID           string
	OrgID        string
	Email        string // unique across all organizations, used for login
	Name         string
	PasswordHash string // argon2 encoded
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
