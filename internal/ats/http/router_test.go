package http

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

	"github.com/talentpipehq/talentpipe/internal/ats/service"
	"github.com/talentpipehq/talentpipe/internal/ats/store/drivers/sqlite"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRouter("test", st, logger)
	r.TokenService = &service.TokenService{
		Store:     st,
		Secret:    []byte("router-test-secret-0123456789abcdef"),
		Issuer:    "talentpipe-test",
		AccessTTL: time.Hour,
	}
	r.OrgService = &service.OrgService{Store: st}
	r.UserService = &service.UserService{Store: st}
	r.ClientService = &service.ClientService{Store: st}
	r.CandidateService = &service.CandidateService{Store: st}
	r.JobService = &service.JobService{Store: st}
	r.ApplicationService = &service.ApplicationService{Store: st}
	r.NoteService = &service.NoteService{Store: st}
	r.DashboardService = &service.DashboardService{Store: st}
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, router *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// registerOrg signs up a fresh organization and returns the admin's access
// token and the registration payload.
func registerOrg(t *testing.T, router *Router, orgName, email string) (string, map[string]any) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]any{
		"org_name": orgName,
		"email":    email,
		"name":     "Avery Admin",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]any
	decodeBody(t, rec, &body)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token, body
}

func TestRegisterLoginAndMe(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	token, body := registerOrg(t, router, "Acme Talent", "avery@acme.test")
	require.Equal(t, "Bearer", body["token_type"])

	user := body["user"].(map[string]any)
	require.Equal(t, "admin", user["role"])
	require.Equal(t, "avery@acme.test", user["email"])
	require.NotEmpty(t, user["org_id"])

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "avery@acme.test",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me map[string]any
	decodeBody(t, rec, &me)
	require.Equal(t, "avery@acme.test", me["email"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	registerOrg(t, router, "Acme Talent", "avery@acme.test")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "avery@acme.test",
		"password": "definitely-not-the-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	require.Equal(t, true, body["authRequired"])
	require.Equal(t, "auth_required", body["error"])
}

func TestMissingTokenGetsAuthRequiredSentinel(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/clients", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	require.Equal(t, true, body["authRequired"])
	require.Equal(t, "auth_required", body["error"])
}

func TestClientCRUD(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token, _ := registerOrg(t, router, "Acme Talent", "avery@acme.test")

	rec := doJSON(t, router, http.MethodPost, "/api/clients", token, map[string]any{
		"name":          "Initech",
		"industry":      "software",
		"contact_email": "tom@initech.test",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	decodeBody(t, rec, &created)
	id := created["id"].(string)
	require.NotEmpty(t, id)
	require.NotEmpty(t, created["org_id"])

	rec = doJSON(t, router, http.MethodGet, "/api/clients", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Data []map[string]any `json:"data"`
	}
	decodeBody(t, rec, &list)
	require.Len(t, list.Data, 1)
	require.Equal(t, "Initech", list.Data[0]["name"])

	rec = doJSON(t, router, http.MethodPut, "/api/clients/"+id, token, map[string]any{
		"name":     "Initech Global",
		"industry": "software",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated map[string]any
	decodeBody(t, rec, &updated)
	require.Equal(t, "Initech Global", updated["name"])

	rec = doJSON(t, router, http.MethodDelete, "/api/clients/"+id, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/clients/"+id, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var errBody map[string]any
	decodeBody(t, rec, &errBody)
	require.Equal(t, "not_found", errBody["error"])
}

func TestValidationErrorsNameTheField(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token, _ := registerOrg(t, router, "Acme Talent", "avery@acme.test")

	rec := doJSON(t, router, http.MethodPost, "/api/clients", token, map[string]any{
		"name":          "Initech",
		"contact_email": "not-an-email",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decodeBody(t, rec, &body)
	require.Equal(t, "validation_error", body.Error)
	require.Contains(t, body.Fields, "contact_email")
}

func TestEmptyListIsAnEmptyEnvelope(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token, _ := registerOrg(t, router, "Acme Talent", "avery@acme.test")

	rec := doJSON(t, router, http.MethodGet, "/api/candidates", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestDemoViewerIsReadOnly(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	adminToken, _ := registerOrg(t, router, "Acme Talent", "avery@acme.test")

	rec := doJSON(t, router, http.MethodPost, "/api/users", adminToken, map[string]any{
		"email":    "demo@acme.test",
		"name":     "Demo Viewer",
		"password": "demo-viewing-only!",
		"role":     "demo_viewer",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "demo@acme.test",
		"password": "demo-viewing-only!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login map[string]any
	decodeBody(t, rec, &login)
	demoToken := login["access_token"].(string)

	rec = doJSON(t, router, http.MethodGet, "/api/clients", demoToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/clients", demoToken, map[string]any{
		"name": "Should Not Exist",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	require.Equal(t, "forbidden", body["error"])
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	adminToken, _ := registerOrg(t, router, "Acme Talent", "avery@acme.test")

	rec := doJSON(t, router, http.MethodPost, "/api/users", adminToken, map[string]any{
		"email":    "rue@acme.test",
		"name":     "Rue Recruiter",
		"password": "recruiting-rocks!",
		"role":     "recruiter",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "rue@acme.test",
		"password": "recruiting-rocks!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login map[string]any
	decodeBody(t, rec, &login)
	recruiterToken := login["access_token"].(string)

	rec = doJSON(t, router, http.MethodGet, "/api/users", recruiterToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Data []map[string]any `json:"data"`
	}
	decodeBody(t, rec, &list)
	require.Len(t, list.Data, 2)
}

// pipelineFixture creates a client, a job and a candidate and returns their
// ids plus a fresh application.
func pipelineFixture(t *testing.T, router *Router, token string) (jobID, candidateID, appID string) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/clients", token, map[string]any{"name": "Initech"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var client map[string]any
	decodeBody(t, rec, &client)

	rec = doJSON(t, router, http.MethodPost, "/api/jobs", token, map[string]any{
		"client_id": client["id"],
		"title":     "Senior Gopher",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var job map[string]any
	decodeBody(t, rec, &job)

	rec = doJSON(t, router, http.MethodPost, "/api/candidates", token, map[string]any{
		"name":  "Casey Candidate",
		"email": "casey@example.test",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var candidate map[string]any
	decodeBody(t, rec, &candidate)

	rec = doJSON(t, router, http.MethodPost, "/api/applications", token, map[string]any{
		"job_id":       job["id"],
		"candidate_id": candidate["id"],
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var app map[string]any
	decodeBody(t, rec, &app)
	require.Equal(t, "applied", app["stage"])

	return job["id"].(string), candidate["id"].(string), app["id"].(string)
}

func TestStageMoveOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token, _ := registerOrg(t, router, "Acme Talent", "avery@acme.test")
	_, _, appID := pipelineFixture(t, router, token)

	rec := doJSON(t, router, http.MethodPut, "/api/applications/"+appID+"/stage", token, map[string]any{
		"stage": "screening",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var app map[string]any
	decodeBody(t, rec, &app)
	require.Equal(t, "screening", app["stage"])

	// Skipping ahead is rejected with a field-level error.
	rec = doJSON(t, router, http.MethodPut, "/api/applications/"+appID+"/stage", token, map[string]any{
		"stage": "hired",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decodeBody(t, rec, &body)
	require.Equal(t, "validation_error", body.Error)
	require.Contains(t, body.Fields, "stage")
}

func TestPipelineEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token, _ := registerOrg(t, router, "Acme Talent", "avery@acme.test")
	jobID, _, _ := pipelineFixture(t, router, token)

	rec := doJSON(t, router, http.MethodGet, "/api/pipeline", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/pipeline?job_id="+jobID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var list struct {
		Data []struct {
			Stage        string           `json:"stage"`
			Applications []map[string]any `json:"applications"`
		} `json:"data"`
	}
	decodeBody(t, rec, &list)
	require.Len(t, list.Data, 6)
	require.Equal(t, "applied", list.Data[0].Stage)
	require.Len(t, list.Data[0].Applications, 1)
	require.NotNil(t, list.Data[1].Applications)
}

func TestTenantIsolationOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	tokenA, _ := registerOrg(t, router, "Acme Talent", "avery@acme.test")
	tokenB, _ := registerOrg(t, router, "Globex Search", "blair@globex.test")

	rec := doJSON(t, router, http.MethodPost, "/api/clients", tokenA, map[string]any{"name": "Initech"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var client map[string]any
	decodeBody(t, rec, &client)
	id := client["id"].(string)

	// The other tenant cannot see, change or delete the record.
	rec = doJSON(t, router, http.MethodGet, "/api/clients/"+id, tokenB, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/clients/"+id, tokenB, map[string]any{"name": "Hijacked"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/clients/"+id, tokenB, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/clients", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestDashboardOverview(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token, _ := registerOrg(t, router, "Acme Talent", "avery@acme.test")
	pipelineFixture(t, router, token)

	rec := doJSON(t, router, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Clients             int            `json:"clients"`
		Candidates          int            `json:"candidates"`
		OpenJobs            int            `json:"open_jobs"`
		ApplicationsByStage map[string]int `json:"applications_by_stage"`
	}
	decodeBody(t, rec, &body)
	require.Equal(t, 1, body.Clients)
	require.Equal(t, 1, body.Candidates)
	require.Equal(t, 1, body.OpenJobs)
	require.Equal(t, 1, body.ApplicationsByStage["applied"])

	// Every stage has a tile even when empty.
	for _, stage := range []string{"applied", "screening", "interview", "offer", "hired", "rejected"} {
		require.Contains(t, body.ApplicationsByStage, stage)
	}
}

func TestNotesAttachToRecords(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)
	token, body := registerOrg(t, router, "Acme Talent", "avery@acme.test")
	userID := body["user"].(map[string]any)["id"].(string)
	_, candidateID, _ := pipelineFixture(t, router, token)

	rec := doJSON(t, router, http.MethodPost, "/api/notes", token, map[string]any{
		"entity_type": "candidate",
		"entity_id":   candidateID,
		"body":        "Strong systems background.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var note map[string]any
	decodeBody(t, rec, &note)
	require.Equal(t, userID, note["author_id"])

	rec = doJSON(t, router, http.MethodGet, "/api/notes?entity_type=candidate&entity_id="+candidateID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Data []map[string]any `json:"data"`
	}
	decodeBody(t, rec, &list)
	require.Len(t, list.Data, 1)

	rec = doJSON(t, router, http.MethodPost, "/api/notes", token, map[string]any{
		"entity_type": "spaceship",
		"entity_id":   candidateID,
		"body":        "nope",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	require.Equal(t, "ok", body["status"])
}
