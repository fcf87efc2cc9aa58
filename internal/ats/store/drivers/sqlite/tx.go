package sqlite

import (
	"context"
	"database/sql"

	"github.com/talentpipehq/talentpipe/internal/ats/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open; caller commits/rolls back

// Ping is a no-op for transactions; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{q: t.tx} }
func (t *txStore) Users() store.Users                 { return &usersRepo{q: t.tx} }
func (t *txStore) Clients() store.Clients             { return &clientsRepo{q: t.tx} }
func (t *txStore) Candidates() store.Candidates       { return &candidatesRepo{q: t.tx} }
func (t *txStore) Jobs() store.Jobs                   { return &jobsRepo{q: t.tx} }
func (t *txStore) Applications() store.Applications   { return &applicationsRepo{q: t.tx} }
func (t *txStore) Notes() store.Notes                 { return &notesRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations are applied before transactions start
