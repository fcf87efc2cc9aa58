package ats_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpapi "github.com/talentpipehq/talentpipe/internal/ats/http"
	"github.com/talentpipehq/talentpipe/internal/ats/service"
	"github.com/talentpipehq/talentpipe/internal/ats/store/drivers/sqlite"
	"github.com/talentpipehq/talentpipe/pkg/atssdk"
)

// startServer boots the full API against an in-memory database and returns
// its base URL. Each test gets its own server so rate limiter state never
// bleeds between tests.
func startServer(t *testing.T) string {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := httpapi.NewRouter("e2e", st, logger)
	router.TokenService = &service.TokenService{
		Store:     st,
		Secret:    []byte("e2e-test-secret-0123456789abcdef"),
		Issuer:    "talentpipe-e2e",
		AccessTTL: time.Hour,
	}
	router.OrgService = &service.OrgService{Store: st}
	router.UserService = &service.UserService{Store: st}
	router.ClientService = &service.ClientService{Store: st}
	router.CandidateService = &service.CandidateService{Store: st}
	router.JobService = &service.JobService{Store: st}
	router.ApplicationService = &service.ApplicationService{Store: st}
	router.NoteService = &service.NoteService{Store: st}
	router.DashboardService = &service.DashboardService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

// registerAdmin signs up a fresh organization through the public endpoint.
func registerAdmin(t *testing.T, baseURL, orgName, email, password string) {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"org_name": orgName,
		"email":    email,
		"name":     "E2E Admin",
		"password": password,
	})
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/api/auth/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// newFacade wires the SDK exactly the way an application embedding it
// would: live source off the session provider's token, demo fixtures, a
// tenant context and the demo flag.
func newFacade(t *testing.T, baseURL string, provider *atssdk.APISessionProvider, prefs atssdk.PrefStore) (*atssdk.Resources, *atssdk.DemoFlag) {
	t.Helper()

	tenant := atssdk.NewTenantContext(provider)
	t.Cleanup(tenant.Close)

	flag := atssdk.NewDemoFlag(prefs, tenant, func() {})

	resources, err := atssdk.NewResources(atssdk.Config{
		Live:   atssdk.NewLiveSource(baseURL, provider.Token),
		Demo:   atssdk.NewDemoSource(),
		Tenant: tenant,
		Flag:   flag,
	})
	require.NoError(t, err)
	t.Cleanup(resources.Close)

	return resources, flag
}
