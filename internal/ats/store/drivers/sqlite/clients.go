package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
)

type clientsRepo struct {
	q queryable
}

const clientColumns = `id, org_id, name, industry, contact_name, contact_email,
	phone, website, notes, created_at, updated_at, deleted_at`

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO clients (id, org_id, name, industry, contact_name, contact_email,
			phone, website, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.OrgID, c.Name, c.Industry, c.ContactName, c.ContactEmail,
		c.Phone, c.Website, c.Notes, now, now,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) GetClientByID(ctx context.Context, orgID, id string) (domain.Client, error) {
	return scanClient(r.q.QueryRowContext(ctx, `
		SELECT `+clientColumns+` FROM clients
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`, orgID, id))
}

func (r *clientsRepo) ListClients(ctx context.Context, orgID string, f store.ClientFilter) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE org_id = ? AND deleted_at IS NULL`
	args := []any{orgID}

	if f.Industry != "" {
		query += ` AND industry = ?`
		args = append(args, f.Industry)
	}
	if f.Search != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+f.Search+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.Client) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE clients SET name = ?, industry = ?, contact_name = ?, contact_email = ?,
			phone = ?, website = ?, notes = ?, updated_at = ?
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		c.Name, c.Industry, c.ContactName, c.ContactEmail,
		c.Phone, c.Website, c.Notes, time.Now().UTC(), c.OrgID, c.ID,
	))
}

func (r *clientsRepo) SoftDeleteClient(ctx context.Context, orgID, id string) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE clients SET deleted_at = ?, updated_at = ?
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		time.Now().UTC(), time.Now().UTC(), orgID, id,
	))
}

func (r *clientsRepo) CountClients(ctx context.Context, orgID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM clients WHERE org_id = ? AND deleted_at IS NULL`, orgID,
	).Scan(&count)
	return count, err
}

func (r *clientsRepo) PurgeDeletedClients(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM clients WHERE deleted_at IS NOT NULL AND deleted_at < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c       domain.Client
		deleted sql.NullTime
	)
	err := row.Scan(&c.ID, &c.OrgID, &c.Name, &c.Industry, &c.ContactName, &c.ContactEmail,
		&c.Phone, &c.Website, &c.Notes, &c.CreatedAt, &c.UpdatedAt, &deleted)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	c.DeletedAt = mapNullTimePtr(deleted)
	return c, nil
}
