package store

import (
	"context"
	"errors"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to stop callers accidentally nesting transactions.
//
// Every tenant-scoped method takes orgID as its first data argument. Rows
// belonging to other organizations are invisible: lookups with the wrong
// orgID return ErrNotFound, never another tenant's record.
type Store interface {
	Organizations() Organizations
	Users() Users
	Clients() Clients
	Candidates() Candidates
	Jobs() Jobs
	Applications() Applications
	Notes() Notes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Prefer this
	// over Tx for multi-step operations such as organization signup.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Organizations interface {
	CreateOrganization(ctx context.Context, org domain.Organization) error

	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)

	// GetOrganizationBySlug is used to reject duplicate slugs at signup.
	GetOrganizationBySlug(ctx context.Context, slug string) (domain.Organization, error)

	UpdateOrganizationName(ctx context.Context, id, name string) error
}

type Users interface {
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login; email is globally unique.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	ListUsers(ctx context.Context, orgID string) ([]domain.User, error)

	UpdateUserRole(ctx context.Context, orgID, userID string, role domain.Role) error

	UpdateUserPasswordHash(ctx context.Context, userID, newHash string) error

	DeleteUser(ctx context.Context, orgID, userID string) error
}

// ClientFilter narrows client listings. Zero values match everything.
type ClientFilter struct {
	Industry string
	Search   string // substring match on name
}

type Clients interface {
	CreateClient(ctx context.Context, c domain.Client) error
	GetClientByID(ctx context.Context, orgID, id string) (domain.Client, error)
	ListClients(ctx context.Context, orgID string, f ClientFilter) ([]domain.Client, error)
	UpdateClient(ctx context.Context, c domain.Client) error

	// SoftDeleteClient hides the row from reads; housekeeping purges it later.
	SoftDeleteClient(ctx context.Context, orgID, id string) error

	CountClients(ctx context.Context, orgID string) (int, error)
	PurgeDeletedClients(ctx context.Context, before time.Time) (int64, error)
}

type CandidateFilter struct {
	Location string
	Skill    string // matches candidates carrying this skill
	Search   string // substring match on name or email
}

type Candidates interface {
	CreateCandidate(ctx context.Context, c domain.Candidate) error
	GetCandidateByID(ctx context.Context, orgID, id string) (domain.Candidate, error)
	ListCandidates(ctx context.Context, orgID string, f CandidateFilter) ([]domain.Candidate, error)
	UpdateCandidate(ctx context.Context, c domain.Candidate) error
	SoftDeleteCandidate(ctx context.Context, orgID, id string) error
	CountCandidates(ctx context.Context, orgID string) (int, error)
	PurgeDeletedCandidates(ctx context.Context, before time.Time) (int64, error)
}

type JobFilter struct {
	ClientID string
	Status   domain.JobStatus
	Search   string // substring match on title
}

type Jobs interface {
	CreateJob(ctx context.Context, j domain.Job) error
	GetJobByID(ctx context.Context, orgID, id string) (domain.Job, error)
	ListJobs(ctx context.Context, orgID string, f JobFilter) ([]domain.Job, error)
	UpdateJob(ctx context.Context, j domain.Job) error
	SoftDeleteJob(ctx context.Context, orgID, id string) error
	CountJobsByStatus(ctx context.Context, orgID string, status domain.JobStatus) (int, error)
	PurgeDeletedJobs(ctx context.Context, before time.Time) (int64, error)
}

type ApplicationFilter struct {
	JobID       string
	CandidateID string
	Stage       domain.Stage
}

type Applications interface {
	CreateApplication(ctx context.Context, a domain.Application) error
	GetApplicationByID(ctx context.Context, orgID, id string) (domain.Application, error)
	ListApplications(ctx context.Context, orgID string, f ApplicationFilter) ([]domain.Application, error)

	// UpdateApplicationStage moves an application; transition validation is
	// the service's job, the store just writes.
	UpdateApplicationStage(ctx context.Context, orgID, id string, stage domain.Stage, reason string) error

	SoftDeleteApplication(ctx context.Context, orgID, id string) error
	CountApplicationsByStage(ctx context.Context, orgID string) (map[domain.Stage]int, error)
	ListRecentApplications(ctx context.Context, orgID string, limit int) ([]domain.Application, error)
	PurgeDeletedApplications(ctx context.Context, before time.Time) (int64, error)
}

type NoteFilter struct {
	EntityType string
	EntityID   string
}

type Notes interface {
	CreateNote(ctx context.Context, n domain.Note) error
	GetNoteByID(ctx context.Context, orgID, id string) (domain.Note, error)
	ListNotes(ctx context.Context, orgID string, f NoteFilter) ([]domain.Note, error)
	UpdateNoteBody(ctx context.Context, orgID, id, body string) error
	SoftDeleteNote(ctx context.Context, orgID, id string) error
	PurgeDeletedNotes(ctx context.Context, before time.Time) (int64, error)
}
