package service

import (
	"context"
	"testing"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/store"

	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesOrgAndAdminAtomically(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &OrgService{Store: st}

	org, admin, err := svc.Register(ctx, RegisterParams{
		OrgName:  "Acme Recruiting Pty Ltd",
		Email:    "Owner@Example.com",
		Name:     "Sam Owner",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	require.Equal(t, "acme-recruiting-pty-ltd", org.Slug)
	require.Equal(t, org.ID, admin.OrgID)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.Equal(t, "owner@example.com", admin.Email, "emails are stored lowercased")

	stored, err := st.Organizations().GetOrganizationBySlug(ctx, "acme-recruiting-pty-ltd")
	require.NoError(t, err)
	require.Equal(t, org.ID, stored.ID)
}

func TestRegisterRejectsDuplicateSlug(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &OrgService{Store: st}

	_, _, err := svc.Register(ctx, RegisterParams{
		OrgName: "Acme", Email: "a@example.com", Name: "A", Password: "password-one",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterParams{
		OrgName: "Acme", Email: "b@example.com", Name: "B", Password: "password-two",
	})
	require.ErrorIs(t, err, ErrOrgSlugTaken)
}

func TestRegisterDuplicateEmailLeavesNoOrphanOrg(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	svc := &OrgService{Store: st}

	_, _, err := svc.Register(ctx, RegisterParams{
		OrgName: "First Org", Email: "same@example.com", Name: "A", Password: "password-one",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterParams{
		OrgName: "Second Org", Email: "same@example.com", Name: "B", Password: "password-two",
	})
	require.ErrorIs(t, err, ErrEmailTaken)

	// The organization insert must have been rolled back with the user.
	_, err = st.Organizations().GetOrganizationBySlug(ctx, "second-org")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	require.Equal(t, "acme-recruiting", slugify("Acme Recruiting"))
	require.Equal(t, "o-connor-sons", slugify("  O'Connor & Sons!  "))
	require.Equal(t, "123-go", slugify("123 GO"))
}
