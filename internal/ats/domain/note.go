package domain

import "time"

// NoteEntity names the record types a note can attach to.
const (
	NoteEntityClient      = "client"
	NoteEntityCandidate   = "candidate"
	NoteEntityJob         = "job"
	NoteEntityApplication = "application"
)

func ValidNoteEntity(entity string) bool {
	switch entity {
	case NoteEntityClient, NoteEntityCandidate, NoteEntityJob, NoteEntityApplication:
		return true
	}
	return false
}

// Note is free-form commentary attached to another record.
type Note struct {
	ID         string
	OrgID      string
	AuthorID   string
	EntityType string
	EntityID   string
	Body       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}
