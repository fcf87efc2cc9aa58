package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/cryptox"
	"github.com/talentpipehq/talentpipe/pkg/idx"
)

var (
	ErrOrgSlugTaken = errors.New("service: organization slug already taken")
	ErrEmailTaken   = errors.New("service: email already registered")
)

// OrgService handles organization signup and settings.
type OrgService struct {
	Store store.Store
}

type RegisterParams struct {
	OrgName  string
	Email    string
	Name     string
	Password string
}

// Register creates an organization and its first admin user atomically.
// Either both records exist afterwards or neither does.
func (s *OrgService) Register(ctx context.Context, p RegisterParams) (domain.Organization, domain.User, error) {
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.Organization{}, domain.User{}, err
	}

	org := domain.Organization{
		ID:   idx.New().String(),
		Name: p.OrgName,
		Slug: slugify(p.OrgName),
	}
	admin := domain.User{
		ID:           idx.New().String(),
		OrgID:        org.ID,
		Email:        strings.ToLower(strings.TrimSpace(p.Email)),
		Name:         p.Name,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrOrgSlugTaken
			}
			return err
		}
		if err := tx.Users().CreateUser(ctx, admin); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Organization{}, domain.User{}, err
	}

	return org, admin, nil
}

// GetOrganization fetches an organization by id.
func (s *OrgService) GetOrganization(ctx context.Context, id string) (domain.Organization, error) {
	return s.Store.Organizations().GetOrganizationByID(ctx, id)
}

// Rename updates the display name. The slug never changes; it is baked
// into URLs and external references.
func (s *OrgService) Rename(ctx context.Context, id, name string) error {
	return s.Store.Organizations().UpdateOrganizationName(ctx, id, name)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
