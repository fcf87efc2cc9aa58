package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
)

type applicationsRepo struct {
	q queryable
}

const applicationColumns = `id, org_id, job_id, candidate_id, stage,
	rejected_reason, created_at, updated_at, deleted_at`

func (r *applicationsRepo) CreateApplication(ctx context.Context, a domain.Application) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO applications (id, org_id, job_id, candidate_id, stage,
			rejected_reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.OrgID, a.JobID, a.CandidateID, string(a.Stage),
		a.RejectedReason, now, now,
	)
	return mapConstraint(err)
}

func (r *applicationsRepo) GetApplicationByID(ctx context.Context, orgID, id string) (domain.Application, error) {
	return scanApplication(r.q.QueryRowContext(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`, orgID, id))
}

func (r *applicationsRepo) ListApplications(ctx context.Context, orgID string, f store.ApplicationFilter) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications
		WHERE org_id = ? AND deleted_at IS NULL`
	args := []any{orgID}

	if f.JobID != "" {
		query += ` AND job_id = ?`
		args = append(args, f.JobID)
	}
	if f.CandidateID != "" {
		query += ` AND candidate_id = ?`
		args = append(args, f.CandidateID)
	}
	if f.Stage != "" {
		query += ` AND stage = ?`
		args = append(args, string(f.Stage))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *applicationsRepo) UpdateApplicationStage(ctx context.Context, orgID, id string, stage domain.Stage, reason string) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE applications SET stage = ?, rejected_reason = ?, updated_at = ?
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		string(stage), reason, time.Now().UTC(), orgID, id,
	))
}

func (r *applicationsRepo) SoftDeleteApplication(ctx context.Context, orgID, id string) error {
	now := time.Now().UTC()
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE applications SET deleted_at = ?, updated_at = ?
		WHERE org_id = ? AND id = ? AND deleted_at IS NULL`,
		now, now, orgID, id,
	))
}

func (r *applicationsRepo) CountApplicationsByStage(ctx context.Context, orgID string) (map[domain.Stage]int, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT stage, COUNT(*) FROM applications
		WHERE org_id = ? AND deleted_at IS NULL
		GROUP BY stage`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Stage]int)
	for rows.Next() {
		var (
			stage string
			count int
		)
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, err
		}
		counts[domain.Stage(stage)] = count
	}
	return counts, rows.Err()
}

func (r *applicationsRepo) ListRecentApplications(ctx context.Context, orgID string, limit int) ([]domain.Application, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE org_id = ? AND deleted_at IS NULL
		ORDER BY updated_at DESC LIMIT ?`, orgID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *applicationsRepo) PurgeDeletedApplications(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM applications WHERE deleted_at IS NOT NULL AND deleted_at < ?`, before.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func collectApplications(rows *sql.Rows) ([]domain.Application, error) {
	apps := []domain.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func scanApplication(row rowScanner) (domain.Application, error) {
	var (
		a       domain.Application
		stage   string
		deleted sql.NullTime
	)
	err := row.Scan(&a.ID, &a.OrgID, &a.JobID, &a.CandidateID, &stage,
		&a.RejectedReason, &a.CreatedAt, &a.UpdatedAt, &deleted)
	if err != nil {
		return domain.Application{}, mapNotFound(err)
	}
	a.Stage = domain.Stage(stage)
	a.DeletedAt = mapNullTimePtr(deleted)
	return a, nil
}
