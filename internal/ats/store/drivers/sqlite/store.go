package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/store"

	_ "modernc.org/sqlite"
)

// queryable is the subset of database/sql shared by *sql.DB and *sql.Tx,
// so the same repos serve both the root store and transactions.
type queryable interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner covers *sql.Row and *sql.Rows so scan helpers serve both.
type rowScanner interface {
	Scan(dest ...any) error
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Rollback is safe to call even after commit.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Organizations() store.Organizations { return &organizationsRepo{q: s.db} }
func (s *Store) Users() store.Users                 { return &usersRepo{q: s.db} }
func (s *Store) Clients() store.Clients             { return &clientsRepo{q: s.db} }
func (s *Store) Candidates() store.Candidates       { return &candidatesRepo{q: s.db} }
func (s *Store) Jobs() store.Jobs                   { return &jobsRepo{q: s.db} }
func (s *Store) Applications() store.Applications   { return &applicationsRepo{q: s.db} }
func (s *Store) Notes() store.Notes                 { return &notesRepo{q: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique constraint violations into ErrAlreadyExists.
func mapConstraint(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

// mapSkills decodes the JSON skills column. Skills can contain spaces so
// they are stored as a JSON array, not a separated string.
func mapSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	var skills []string
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		return nil
	}
	return skills
}

func mapSkillsJSON(skills []string) string {
	if len(skills) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// affectedOrNotFound maps a zero-row write to ErrNotFound so tenant-scoped
// updates can't silently touch nothing.
func affectedOrNotFound(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
