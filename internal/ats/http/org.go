package http

import (
	"net/http"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/service"
	"github.com/talentpipehq/talentpipe/pkg/httpx"
)

type OrgHandler struct {
	OrgService *service.OrgService
}

type orgResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type orgRenameRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
}

func toOrgResponse(o domain.Organization) orgResponse {
	return orgResponse{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		UpdatedAt: o.UpdatedAt.Format(time.RFC3339),
	}
}

// HandleGet handles GET /api/org; it returns the caller's organization.
func (h *OrgHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	org, err := h.OrgService.GetOrganization(ctx, httpx.OrgIDFromCtx(ctx))
	if err != nil {
		writeStoreError(w, r, "failed to load organization", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrgResponse(org))
}

// HandleRename handles PUT /api/org. The slug is fixed at registration.
func (h *OrgHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req orgRenameRequest
	if !checkRequest(w, r, &req) {
		return
	}

	orgID := httpx.OrgIDFromCtx(ctx)
	if err := h.OrgService.Rename(ctx, orgID, req.Name); err != nil {
		writeStoreError(w, r, "failed to rename organization", err)
		return
	}

	org, err := h.OrgService.GetOrganization(ctx, orgID)
	if err != nil {
		writeStoreError(w, r, "failed to load organization", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrgResponse(org))
}
