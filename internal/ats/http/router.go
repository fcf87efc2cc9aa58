package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/service"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/httpx"
	"github.com/talentpipehq/talentpipe/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	TokenService       *service.TokenService
	OrgService         *service.OrgService
	UserService        *service.UserService
	ClientService      *service.ClientService
	CandidateService   *service.CandidateService
	JobService         *service.JobService
	ApplicationService *service.ApplicationService
	NoteService        *service.NoteService
	DashboardService   *service.DashboardService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerOrg()
	r.registerUsers()
	r.registerClients()
	r.registerCandidates()
	r.registerJobs()
	r.registerApplications()
	r.registerNotes()
	r.registerDashboard()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps an authenticated read endpoint: token check plus per-user
// rate limit.
func (r *Router) secured(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.TokenService),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

// securedWrite is secured plus the demo-viewer block; demo viewers are
// read-only everywhere.
func (r *Router) securedWrite(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.TokenService),
		httpx.DenyRole(string(domain.RoleDemoViewer)),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

// securedAdmin restricts an endpoint to org admins.
func (r *Router) securedAdmin(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.TokenService),
		httpx.RequireAnyRole(string(domain.RoleAdmin)),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		TokenService: r.TokenService,
		OrgService:   r.OrgService,
		UserService:  r.UserService,
	}

	// Unauthenticated endpoints get the strict per-IP limit to slow down
	// credential stuffing and signup abuse.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/auth/me", r.secured(h.HandleMe))
}

func (r *Router) registerOrg() {
	h := &OrgHandler{OrgService: r.OrgService}

	r.Mux.Handle("GET /api/org", r.secured(h.HandleGet))
	r.Mux.Handle("PUT /api/org", r.securedAdmin(h.HandleRename))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/users", r.securedAdmin(h.HandleList))
	r.Mux.Handle("POST /api/users", r.securedAdmin(h.HandleInvite))
	r.Mux.Handle("PUT /api/users/{id}/role", r.securedAdmin(h.HandleChangeRole))
	r.Mux.Handle("DELETE /api/users/{id}", r.securedAdmin(h.HandleRemove))
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	r.Mux.Handle("GET /api/clients", r.secured(h.HandleList))
	r.Mux.Handle("GET /api/clients/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /api/clients", r.securedWrite(h.HandleCreate))
	r.Mux.Handle("PUT /api/clients/{id}", r.securedWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/clients/{id}", r.securedWrite(h.HandleDelete))
}

func (r *Router) registerCandidates() {
	h := &CandidatesHandler{CandidateService: r.CandidateService}

	r.Mux.Handle("GET /api/candidates", r.secured(h.HandleList))
	r.Mux.Handle("GET /api/candidates/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /api/candidates", r.securedWrite(h.HandleCreate))
	r.Mux.Handle("PUT /api/candidates/{id}", r.securedWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/candidates/{id}", r.securedWrite(h.HandleDelete))
}

func (r *Router) registerJobs() {
	h := &JobsHandler{JobService: r.JobService}

	r.Mux.Handle("GET /api/jobs", r.secured(h.HandleList))
	r.Mux.Handle("GET /api/jobs/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /api/jobs", r.securedWrite(h.HandleCreate))
	r.Mux.Handle("PUT /api/jobs/{id}", r.securedWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/jobs/{id}", r.securedWrite(h.HandleDelete))
}

func (r *Router) registerApplications() {
	h := &ApplicationsHandler{ApplicationService: r.ApplicationService}

	r.Mux.Handle("GET /api/applications", r.secured(h.HandleList))
	r.Mux.Handle("GET /api/applications/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /api/applications", r.securedWrite(h.HandleCreate))
	r.Mux.Handle("PUT /api/applications/{id}/stage", r.securedWrite(h.HandleMoveStage))
	r.Mux.Handle("DELETE /api/applications/{id}", r.securedWrite(h.HandleDelete))

	r.Mux.Handle("GET /api/pipeline", r.secured(h.HandlePipeline))
}

func (r *Router) registerNotes() {
	h := &NotesHandler{NoteService: r.NoteService}

	r.Mux.Handle("GET /api/notes", r.secured(h.HandleList))
	r.Mux.Handle("GET /api/notes/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /api/notes", r.securedWrite(h.HandleCreate))
	r.Mux.Handle("PUT /api/notes/{id}", r.securedWrite(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/notes/{id}", r.securedWrite(h.HandleDelete))
}

func (r *Router) registerDashboard() {
	h := &DashboardHandler{DashboardService: r.DashboardService}

	r.Mux.Handle("GET /api/dashboard", r.secured(h.HandleOverview))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may
	// poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
