package sqlite

import (
	"context"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
)

type organizationsRepo struct {
	q queryable
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, org domain.Organization) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO organizations (id, name, slug, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		org.ID, org.Name, org.Slug, now, now,
	)
	return mapConstraint(err)
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	return r.scanOne(r.q.QueryRowContext(ctx, `
		SELECT id, name, slug, created_at, updated_at
		FROM organizations WHERE id = ?`, id))
}

func (r *organizationsRepo) GetOrganizationBySlug(ctx context.Context, slug string) (domain.Organization, error) {
	return r.scanOne(r.q.QueryRowContext(ctx, `
		SELECT id, name, slug, created_at, updated_at
		FROM organizations WHERE slug = ?`, slug))
}

func (r *organizationsRepo) UpdateOrganizationName(ctx context.Context, id, name string) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE organizations SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().UTC(), id,
	))
}

func (r *organizationsRepo) scanOne(row rowScanner) (domain.Organization, error) {
	var org domain.Organization
	err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return org, nil
}
