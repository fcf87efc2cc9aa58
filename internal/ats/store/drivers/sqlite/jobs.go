package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
)

type jobsRepo struct {
	q queryable
}

const jobColumns = `id, org_id, client_id, title, description, location, status,
	salary_min, salary_max, created_at, updated_at, deleted_at`

func (r *jobsRepo) CreateJob(ctx context.Context, j domain.Job) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO jobs (id, org_id, client_id, title, description, location, status,
			salary_min, salary_max, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.OrgID, j.ClientID, j.Title, j.Description, j.Location, string(j.Status),
		j.SalaryMin, j.SalaryMax, now, now,
	)
	return mapConstraint(err)
}

func (r *jobsRepo) GetJobByID(ctx context.Context, orgID, id string) (domain.Job, error) {
	return scanJob(r.q.QueryRowContext(ctx, `
		SELECT `+jobColumns+` FROM jobs
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`, orgID, id))
}

func (r *jobsRepo) ListJobs(ctx context.Context, orgID string, f store.JobFilter) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE org_id = ? AND deleted_at IS NULL`
	args := []any{orgID}

	if f.ClientID != "" {
		query += ` AND client_id = ?`
		args = append(args, f.ClientID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.Search != "" {
		query += ` AND title LIKE ?`
		args = append(args, "%"+f.Search+"%")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *jobsRepo) UpdateJob(ctx context.Context, j domain.Job) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE jobs SET client_id = ?, title = ?, description = ?, location = ?, status = ?,
			salary_min = ?, salary_max = ?, updated_at = ?
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		j.ClientID, j.Title, j.Description, j.Location, string(j.Status),
		j.SalaryMin, j.SalaryMax, time.Now().UTC(), j.OrgID, j.ID,
	))
}

func (r *jobsRepo) SoftDeleteJob(ctx context.Context, orgID, id string) error {
	now := time.Now().UTC()
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE jobs SET deleted_at = ?, updated_at = ?
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		now, now, orgID, id,
	))
}

func (r *jobsRepo) CountJobsByStatus(ctx context.Context, orgID string, status domain.JobStatus) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM jobs
		WHERE org_id = ? AND status = ? AND deleted_at IS NULL`, orgID, string(status),
	).Scan(&count)
	return count, err
}

func (r *jobsRepo) PurgeDeletedJobs(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM jobs WHERE deleted_at IS NOT NULL AND deleted_at < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanJob(row rowScanner) (domain.Job, error) {
	var (
		j       domain.Job
		status  string
		deleted sql.NullTime
	)
	err := row.Scan(&j.ID, &j.OrgID, &j.ClientID, &j.Title, &j.Description, &j.Location, &status,
		&j.SalaryMin, &j.SalaryMax, &j.CreatedAt, &j.UpdatedAt, &deleted)
	if err != nil {
		return domain.Job{}, mapNotFound(err)
	}
	j.Status = domain.JobStatus(status)
	j.DeletedAt = mapNullTimePtr(deleted)
	return j, nil
}
