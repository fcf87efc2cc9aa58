package sqlite

import (
	"context"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
)

type usersRepo struct {
	q queryable
}

const userColumns = `id, org_id, email, name, password_hash, role, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, org_id, email, name, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.OrgID, u.Email, u.Name, u.PasswordHash, string(u.Role), now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) ListUsers(ctx context.Context, orgID string) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE org_id = ? ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) UpdateUserRole(ctx context.Context, orgID, userID string, role domain.Role) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE users SET role = ?, updated_at = ?
		WHERE org_id = ? AND id = ?`,
		string(role), time.Now().UTC(), orgID, userID,
	))
}

func (r *usersRepo) UpdateUserPasswordHash(ctx context.Context, userID, newHash string) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	))
}

func (r *usersRepo) DeleteUser(ctx context.Context, orgID, userID string) error {
	return affectedOrNotFound(r.q.ExecContext(ctx, `
		DELETE FROM users WHERE org_id = ? AND id = ?`, orgID, userID,
	))
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(&u.ID, &u.OrgID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	return u, nil
}
