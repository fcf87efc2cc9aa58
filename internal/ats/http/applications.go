package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/service"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/httpx"
)

type ApplicationsHandler struct {
	ApplicationService *service.ApplicationService
}

type applicationRequest struct {
	JobID       string `json:"job_id" validate:"required"`
	CandidateID string `json:"candidate_id" validate:"required"`
}

type applicationResponse struct {
	ID             string `json:"id"`
	OrgID          string `json:"org_id"`
	JobID          string `json:"job_id"`
	CandidateID    string `json:"candidate_id"`
	Stage          string `json:"stage"`
	RejectedReason string `json:"rejected_reason,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func toApplicationResponse(a domain.Application) applicationResponse {
	return applicationResponse{
		ID:             a.ID,
		OrgID:          a.OrgID,
		JobID:          a.JobID,
		CandidateID:    a.CandidateID,
		Stage:          string(a.Stage),
		RejectedReason: a.RejectedReason,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}

func writeApplicationError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var transitionErr *domain.ErrStageTransition
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		writeValidation(w, map[string]string{"job_id": "not found"})
	case errors.Is(err, service.ErrCandidateNotFound):
		writeValidation(w, map[string]string{"candidate_id": "not found"})
	case errors.Is(err, service.ErrDuplicateApplication):
		writeValidation(w, map[string]string{"candidate_id": "already applied to this job"})
	case errors.Is(err, service.ErrInvalidStage):
		writeValidation(w, map[string]string{"stage": "is invalid"})
	case errors.As(err, &transitionErr):
		writeValidation(w, map[string]string{"stage": transitionErr.Error()})
	default:
		writeStoreError(w, r, msg, err)
	}
}

// HandleList handles GET /api/applications.
func (h *ApplicationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := store.ApplicationFilter{
		JobID:       r.URL.Query().Get("job_id"),
		CandidateID: r.URL.Query().Get("candidate_id"),
		Stage:       domain.Stage(r.URL.Query().Get("stage")),
	}

	apps, err := h.ApplicationService.ListApplications(ctx, httpx.OrgIDFromCtx(ctx), filter)
	if err != nil {
		writeServerError(w, r, "failed to list applications", err)
		return
	}

	out := make([]applicationResponse, len(apps))
	for i, a := range apps {
		out[i] = toApplicationResponse(a)
	}
	writeList(w, out)
}

// HandleGet handles GET /api/applications/{id}.
func (h *ApplicationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	a, err := h.ApplicationService.GetApplication(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, "failed to load application", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
}

// HandleCreate handles POST /api/applications.
func (h *ApplicationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req applicationRequest
	if !checkRequest(w, r, &req) {
		return
	}

	a, err := h.ApplicationService.CreateApplication(ctx, httpx.OrgIDFromCtx(ctx), req.JobID, req.CandidateID)
	if err != nil {
		writeApplicationError(w, r, "failed to create application", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toApplicationResponse(a))
}

type moveStageRequest struct {
	Stage  string `json:"stage" validate:"required"`
	Reason string `json:"reason" validate:"max=2000"`
}

// HandleMoveStage handles PUT /api/applications/{id}/stage.
func (h *ApplicationsHandler) HandleMoveStage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req moveStageRequest
	if !checkRequest(w, r, &req) {
		return
	}

	a, err := h.ApplicationService.MoveStage(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"),
		domain.Stage(req.Stage), req.Reason)
	if err != nil {
		writeApplicationError(w, r, "failed to move application", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
}

// HandleDelete handles DELETE /api/applications/{id}.
func (h *ApplicationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ApplicationService.DeleteApplication(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeStoreError(w, r, "failed to delete application", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type pipelineColumn struct {
	Stage        string                `json:"stage"`
	Applications []applicationResponse `json:"applications"`
}

// HandlePipeline handles GET /api/pipeline?job_id=...; it returns the
// kanban board columns for one job.
func (h *ApplicationsHandler) HandlePipeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		writeBadRequest(w, "job_id query parameter is required")
		return
	}

	columns, err := h.ApplicationService.Pipeline(ctx, httpx.OrgIDFromCtx(ctx), jobID)
	if err != nil {
		writeServerError(w, r, "failed to load pipeline", err)
		return
	}

	out := make([]pipelineColumn, len(columns))
	for i, col := range columns {
		apps := make([]applicationResponse, len(col.Applications))
		for j, a := range col.Applications {
			apps[j] = toApplicationResponse(a)
		}
		out[i] = pipelineColumn{Stage: string(col.Stage), Applications: apps}
	}
	writeList(w, out)
}
