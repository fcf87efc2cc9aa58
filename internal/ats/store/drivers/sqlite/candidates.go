package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
)

type candidatesRepo struct {
	q queryable
}

const candidateColumns = `id, org_id, name, email, phone, location, skills,
	summary, resume_url, created_at, updated_at, deleted_at`

func (r *candidatesRepo) CreateCandidate(ctx context.Context, c domain.Candidate) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO candidates (id, org_id, name, email, phone, location, skills,
			summary, resume_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.OrgID, c.Name, c.Email, c.Phone, c.Location, mapSkillsJSON(c.Skills),
		c.Summary, c.ResumeURL, now, now,
	)
	return mapConstraint(err)
}

func (r *candidatesRepo) GetCandidateByID(ctx context.Context, orgID, id string) (domain.Candidate, error) {
	return scanCandidate(r.q.QueryRowContext(ctx, `
		SELECT `+candidateColumns+` FROM candidates
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`, orgID, id))
}

func (r *candidatesRepo) ListCandidates(ctx context.Context, orgID string, f store.CandidateFilter) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates
		WHERE org_id = ? AND deleted_at IS NULL`
	args := []any{orgID}

	if f.Location != "" {
		query += ` AND location = ?`
		args = append(args, f.Location)
	}
	if f.Skill != "" {
		// Skills are a JSON array; match the quoted element.
		query += ` AND skills LIKE ?`
		args = append(args, `%"`+f.Skill+`"%`)
	}
	if f.Search != "" {
		query += ` AND (name LIKE ? OR email LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *candidatesRepo) UpdateCandidate(ctx context.Context, c domain.Candidate) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE candidates SET name = ?, email = ?, phone = ?, location = ?, skills = ?,
			summary = ?, resume_url = ?, updated_at = ?
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		c.Name, c.Email, c.Phone, c.Location, mapSkillsJSON(c.Skills),
		c.Summary, c.ResumeURL, time.Now().UTC(), c.OrgID, c.ID,
	))
}

func (r *candidatesRepo) SoftDeleteCandidate(ctx context.Context, orgID, id string) error {
	now := time.Now().UTC()
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE candidates SET deleted_at = ?, updated_at = ?
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		now, now, orgID, id,
	))
}

func (r *candidatesRepo) CountCandidates(ctx context.Context, orgID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM candidates WHERE org_id = ? AND deleted_at IS NULL`, orgID,
	).Scan(&count)
	return count, err
}

func (r *candidatesRepo) PurgeDeletedCandidates(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM candidates WHERE deleted_at IS NOT NULL AND deleted_at < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanCandidate(row rowScanner) (domain.Candidate, error) {
	var (
		c       domain.Candidate
		skills  string
		deleted sql.NullTime
	)
	err := row.Scan(&c.ID, &c.OrgID, &c.Name, &c.Email, &c.Phone, &c.Location, &skills,
		&c.Summary, &c.ResumeURL, &c.CreatedAt, &c.UpdatedAt, &deleted)
	if err != nil {
		return domain.Candidate{}, mapNotFound(err)
	}
	c.Skills = mapSkills(skills)
	c.DeletedAt = mapNullTimePtr(deleted)
	return c, nil
}
