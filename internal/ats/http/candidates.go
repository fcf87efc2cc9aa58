package http

import (
	"net/http"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/service"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/httpx"
)

type CandidatesHandler struct {
	CandidateService *service.CandidateService
}

type candidateRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=200"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Phone     string   `json:"phone" validate:"max=40"`
	Location  string   `json:"location" validate:"max=120"`
	Skills    []string `json:"skills" validate:"max=50,dive,min=1,max=60"`
	Summary   string   `json:"summary" validate:"max=10000"`
	ResumeURL string   `json:"resume_url" validate:"omitempty,url"`
}

func (req candidateRequest) toDomain() domain.Candidate {
	return domain.Candidate{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Location:  req.Location,
		Skills:    req.Skills,
		Summary:   req.Summary,
		ResumeURL: req.ResumeURL,
	}
}

type candidateResponse struct {
	ID        string   `json:"id"`
	OrgID     string   `json:"org_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Location  string   `json:"location"`
	Skills    []string `json:"skills"`
	Summary   string   `json:"summary"`
	ResumeURL string   `json:"resume_url"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func toCandidateResponse(c domain.Candidate) candidateResponse {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	return candidateResponse{
		ID:        c.ID,
		OrgID:     c.OrgID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Location:  c.Location,
		Skills:    skills,
		Summary:   c.Summary,
		ResumeURL: c.ResumeURL,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// HandleList handles GET /api/candidates.
func (h *CandidatesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := store.CandidateFilter{
		Location: r.URL.Query().Get("location"),
		Skill:    r.URL.Query().Get("skill"),
		Search:   r.URL.Query().Get("search"),
	}

	candidates, err := h.CandidateService.ListCandidates(ctx, httpx.OrgIDFromCtx(ctx), filter)
	if err != nil {
		writeServerError(w, r, "failed to list candidates", err)
		return
	}

	out := make([]candidateResponse, len(candidates))
	for i, c := range candidates {
		out[i] = toCandidateResponse(c)
	}
	writeList(w, out)
}

// HandleGet handles GET /api/candidates/{id}.
func (h *CandidatesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := h.CandidateService.GetCandidate(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, "failed to load candidate", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCandidateResponse(c))
}

// HandleCreate handles POST /api/candidates.
func (h *CandidatesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req candidateRequest
	if !checkRequest(w, r, &req) {
		return
	}

	c, err := h.CandidateService.CreateCandidate(ctx, httpx.OrgIDFromCtx(ctx), req.toDomain())
	if err != nil {
		writeServerError(w, r, "failed to create candidate", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCandidateResponse(c))
}

// HandleUpdate handles PUT /api/candidates/{id}.
func (h *CandidatesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req candidateRequest
	if !checkRequest(w, r, &req) {
		return
	}

	c, err := h.CandidateService.UpdateCandidate(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"), req.toDomain())
	if err != nil {
		writeStoreError(w, r, "failed to update candidate", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCandidateResponse(c))
}

// HandleDelete handles DELETE /api/candidates/{id}.
func (h *CandidatesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.CandidateService.DeleteCandidate(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeStoreError(w, r, "failed to delete candidate", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
