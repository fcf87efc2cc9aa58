package service

import (
	"context"
	"errors"
	"strings"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/cryptox"
	"github.com/talentpipehq/talentpipe/pkg/idx"
)

var ErrInvalidRole = errors.New("service: invalid role")

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns all users in the organization.
func (s *UserService) ListUsers(ctx context.Context, orgID string) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx, orgID)
}

type InviteUserParams struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

// InviteUser creates an additional user inside an existing organization.
// Admin-only; enforced at the HTTP layer.
func (s *UserService) InviteUser(ctx context.Context, orgID string, p InviteUserParams) (domain.User, error) {
	if !p.Role.Valid() {
		return domain.User{}, ErrInvalidRole
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		OrgID:        orgID,
		Email:        strings.ToLower(strings.TrimSpace(p.Email)),
		Name:         p.Name,
		PasswordHash: hash,
		Role:         p.Role,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return u, nil
}

// ChangeRole updates a user's role within the organization.
func (s *UserService) ChangeRole(ctx context.Context, orgID, userID string, role domain.Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	return s.Store.Users().UpdateUserRole(ctx, orgID, userID, role)
}

// RemoveUser deletes a user from the organization.
func (s *UserService) RemoveUser(ctx context.Context, orgID, userID string) error {
	return s.Store.Users().DeleteUser(ctx, orgID, userID)
}
