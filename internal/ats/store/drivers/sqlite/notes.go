package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
)

type notesRepo struct {
	q queryable
}

const noteColumns = `id, org_id, author_id, entity_type, entity_id, body,
	created_at, updated_at, deleted_at`

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO notes (id, org_id, author_id, entity_type, entity_id, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.OrgID, n.AuthorID, n.EntityType, n.EntityID, n.Body, now, now,
	)
	return mapConstraint(err)
}

func (r *notesRepo) GetNoteByID(ctx context.Context, orgID, id string) (domain.Note, error) {
	return scanNote(r.q.QueryRowContext(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`, orgID, id))
}

func (r *notesRepo) ListNotes(ctx context.Context, orgID string, f store.NoteFilter) ([]domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes
		WHERE org_id = ? AND deleted_at IS NULL`
	args := []any{orgID}

	if f.EntityType != "" {
		query += ` AND entity_type = ?`
		args = append(args, f.EntityType)
	}
	if f.EntityID != "" {
		query += ` AND entity_id = ?`
		args = append(args, f.EntityID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notesRepo) UpdateNoteBody(ctx context.Context, orgID, id, body string) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE notes SET body = ?, updated_at = ?
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		body, time.Now().UTC(), orgID, id,
	))
}

func (r *notesRepo) SoftDeleteNote(ctx context.Context, orgID, id string) error {
	now := time.Now().UTC()
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE notes SET deleted_at = ?, updated_at = ?
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		now, now, orgID, id,
	))
}

func (r *notesRepo) PurgeDeletedNotes(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM notes WHERE deleted_at IS NOT NULL AND deleted_at < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanNote(row rowScanner) (domain.Note, error) {
	var (
		n       domain.Note
		deleted sql.NullTime
	)
	err := row.Scan(&n.ID, &n.OrgID, &n.AuthorID, &n.EntityType, &n.EntityID, &n.Body,
		&n.CreatedAt, &n.UpdatedAt, &deleted)
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}
	n.DeletedAt = mapNullTimePtr(deleted)
	return n, nil
}
