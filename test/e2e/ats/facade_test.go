package ats_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talentpipehq/talentpipe/pkg/atssdk"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL := startServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		resp, err := http.Get(baseURL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestFacadeCRUDRoundTrip(t *testing.T) {
	baseURL := startServer(t)
	registerAdmin(t, baseURL, "Acme Talent", "avery@acme.test", "correct-horse-battery")

	provider := atssdk.NewAPISessionProvider(baseURL, nil)
	resources, _ := newFacade(t, baseURL, provider, atssdk.NewMemPrefStore())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sess, err := provider.Login(ctx, "avery@acme.test", "correct-horse-battery")
	require.NoError(t, err)
	require.Equal(t, atssdk.RoleAdmin, sess.Role)
	require.NotEmpty(t, sess.OrgID)

	res := resources.Create(ctx, atssdk.ResourceClients, atssdk.Document{
		"name":     "Initech",
		"industry": "software",
	})
	require.Equal(t, atssdk.StatusOK, res.Status, res.Err)
	require.False(t, res.NoOp)
	id := res.Doc.ID()
	require.NotEmpty(t, id)
	require.Equal(t, sess.OrgID, res.Doc["org_id"])

	res = resources.List(ctx, atssdk.ResourceClients, nil)
	require.Equal(t, atssdk.StatusOK, res.Status, res.Err)
	require.Len(t, res.Docs, 1)
	require.Equal(t, "Initech", res.Docs[0]["name"])

	// The write invalidated the cached list, so the rename is visible on
	// the very next read.
	res = resources.Update(ctx, atssdk.ResourceClients, id, atssdk.Document{
		"name":     "Initech Global",
		"industry": "software",
	})
	require.Equal(t, atssdk.StatusOK, res.Status, res.Err)

	res = resources.List(ctx, atssdk.ResourceClients, nil)
	require.Equal(t, atssdk.StatusOK, res.Status, res.Err)
	require.Len(t, res.Docs, 1)
	require.Equal(t, "Initech Global", res.Docs[0]["name"])

	res = resources.Delete(ctx, atssdk.ResourceClients, id)
	require.Equal(t, atssdk.StatusOK, res.Status, res.Err)

	res = resources.Get(ctx, atssdk.ResourceClients, id)
	require.Equal(t, atssdk.StatusNotFound, res.Status)
}

func TestFacadeSurfacesFieldErrors(t *testing.T) {
	baseURL := startServer(t)
	registerAdmin(t, baseURL, "Acme Talent", "avery@acme.test", "correct-horse-battery")

	provider := atssdk.NewAPISessionProvider(baseURL, nil)
	resources, _ := newFacade(t, baseURL, provider, atssdk.NewMemPrefStore())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := provider.Login(ctx, "avery@acme.test", "correct-horse-battery")
	require.NoError(t, err)

	res := resources.Create(ctx, atssdk.ResourceClients, atssdk.Document{
		"name":          "Initech",
		"contact_email": "not-an-email",
	})
	require.Equal(t, atssdk.StatusError, res.Status)
	require.Contains(t, res.FieldErrors, "contact_email")
}

func TestSignedOutReadsResolveToNoTenant(t *testing.T) {
	baseURL := startServer(t)

	provider := atssdk.NewAPISessionProvider(baseURL, nil)
	resources, _ := newFacade(t, baseURL, provider, atssdk.NewMemPrefStore())

	// No stored login; the provider resolves to an anonymous session.
	provider.MarkResolved()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res := resources.List(ctx, atssdk.ResourceClients, nil)
	require.Equal(t, atssdk.StatusNoTenant, res.Status)
	require.NotNil(t, res.Docs)
	require.Empty(t, res.Docs)
}

func TestLogoutDropsTenantData(t *testing.T) {
	baseURL := startServer(t)
	registerAdmin(t, baseURL, "Acme Talent", "avery@acme.test", "correct-horse-battery")

	prefs := atssdk.NewMemPrefStore()
	provider := atssdk.NewAPISessionProvider(baseURL, prefs)
	resources, _ := newFacade(t, baseURL, provider, prefs)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sess, err := provider.Login(ctx, "avery@acme.test", "correct-horse-battery")
	require.NoError(t, err)

	res := resources.List(ctx, atssdk.ResourceClients, nil)
	require.Equal(t, atssdk.StatusOK, res.Status, res.Err)

	provider.Logout()
	resources.ForgetTenant(sess.OrgID)

	res = resources.List(ctx, atssdk.ResourceClients, nil)
	require.Equal(t, atssdk.StatusNoTenant, res.Status)

	if _, ok := prefs.Get(atssdk.PrefUser); ok {
		t.Fatal("signed-out prefs still hold tp_user")
	}
}

func TestDemoModeNeverTouchesTheAPI(t *testing.T) {
	// Deliberately no server: demo mode must not need one.
	provider := atssdk.NewAPISessionProvider("http://127.0.0.1:1", nil)
	prefs := atssdk.NewMemPrefStore()
	resources, flag := newFacade(t, "http://127.0.0.1:1", provider, prefs)

	provider.MarkResolved()
	flag.Resolve(url.Values{"demo": {"true"}})
	require.True(t, flag.IsDemo())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res := resources.List(ctx, atssdk.ResourceCandidates, nil)
	require.Equal(t, atssdk.StatusOK, res.Status, res.Err)
	require.NotEmpty(t, res.Docs)

	// Mutations short-circuit to a no-op instead of writing demo data.
	res = resources.Create(ctx, atssdk.ResourceClients, atssdk.Document{"name": "Nope"})
	require.Equal(t, atssdk.StatusOK, res.Status)
	require.True(t, res.NoOp)
}
