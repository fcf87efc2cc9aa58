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

type JobsHandler struct {
	JobService *service.JobService
}

type jobRequest struct {
	ClientID    string `json:"client_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=20000"`
	Location    string `json:"location" validate:"max=120"`
	Status      string `json:"status" validate:"omitempty,oneof=open on_hold closed"`
	SalaryMin   int64  `json:"salary_min" validate:"min=0"`
	SalaryMax   int64  `json:"salary_max" validate:"min=0"`
}

func (req jobRequest) toDomain() domain.Job {
	return domain.Job{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Status:      domain.JobStatus(req.Status),
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
	}
}

type jobResponse struct {
	ID          string `json:"id"`
	OrgID       string `json:"org_id"`
	ClientID    string `json:"client_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	SalaryMin   int64  `json:"salary_min"`
	SalaryMax   int64  `json:"salary_max"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toJobResponse(j domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		OrgID:       j.OrgID,
		ClientID:    j.ClientID,
		Title:       j.Title,
		Description: j.Description,
		Location:    j.Location,
		Status:      string(j.Status),
		SalaryMin:   j.SalaryMin,
		SalaryMax:   j.SalaryMax,
		CreatedAt:   j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   j.UpdatedAt.Format(time.RFC3339),
	}
}

// writeJobError maps job service validation failures onto field errors.
func writeJobError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		writeValidation(w, map[string]string{"client_id": "not found"})
	case errors.Is(err, service.ErrInvalidJobStatus):
		writeValidation(w, map[string]string{"status": "is invalid"})
	case errors.Is(err, service.ErrSalaryRange):
		writeValidation(w, map[string]string{"salary_min": "exceeds salary_max"})
	default:
		writeStoreError(w, r, msg, err)
	}
}

// HandleList handles GET /api/jobs.
func (h *JobsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := store.JobFilter{
		ClientID: r.URL.Query().Get("client_id"),
		Status:   domain.JobStatus(r.URL.Query().Get("status")),
		Search:   r.URL.Query().Get("search"),
	}

	jobs, err := h.JobService.ListJobs(ctx, httpx.OrgIDFromCtx(ctx), filter)
	if err != nil {
		writeServerError(w, r, "failed to list jobs", err)
		return
	}

	out := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = toJobResponse(j)
	}
	writeList(w, out)
}

// HandleGet handles GET /api/jobs/{id}.
func (h *JobsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	j, err := h.JobService.GetJob(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, "failed to load job", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJobResponse(j))
}

// HandleCreate handles POST /api/jobs.
func (h *JobsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req jobRequest
	if !checkRequest(w, r, &req) {
		return
	}

	j, err := h.JobService.CreateJob(ctx, httpx.OrgIDFromCtx(ctx), req.toDomain())
	if err != nil {
		writeJobError(w, r, "failed to create job", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toJobResponse(j))
}

// HandleUpdate handles PUT /api/jobs/{id}.
func (h *JobsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req jobRequest
	if !checkRequest(w, r, &req) {
		return
	}
	if req.Status == "" {
		req.Status = string(domain.JobOpen)
	}

	j, err := h.JobService.UpdateJob(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"), req.toDomain())
	if err != nil {
		writeJobError(w, r, "failed to update job", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toJobResponse(j))
}

// HandleDelete handles DELETE /api/jobs/{id}.
func (h *JobsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.JobService.DeleteJob(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeStoreError(w, r, "failed to delete job", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
