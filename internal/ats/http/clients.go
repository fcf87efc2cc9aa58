package http

import (
	"net/http"
	"time"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/service"
	"github.com/talentpipehq/talentpipe/internal/ats/store"
	"github.com/talentpipehq/talentpipe/pkg/httpx"
)

// ClientsHandler handles client company CRUD.
type ClientsHandler struct {
	ClientService *service.ClientService
}

type clientRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Industry     string `json:"industry" validate:"max=100"`
	ContactName  string `json:"contact_name" validate:"max=120"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"max=40"`
	Website      string `json:"website" validate:"omitempty,url"`
	Notes        string `json:"notes" validate:"max=10000"`
}

func (req clientRequest) toDomain() domain.Client {
	return domain.Client{
		Name:         req.Name,
		Industry:     req.Industry,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Website:      req.Website,
		Notes:        req.Notes,
	}
}

type clientResponse struct {
	ID           string `json:"id"`
	OrgID        string `json:"org_id"`
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	Notes        string `json:"notes"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toClientResponse(c domain.Client) clientResponse {
	return clientResponse{
		ID:           c.ID,
		OrgID:        c.OrgID,
		Name:         c.Name,
		Industry:     c.Industry,
		ContactName:  c.ContactName,
		ContactEmail: c.ContactEmail,
		Phone:        c.Phone,
		Website:      c.Website,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}

// HandleList handles GET /api/clients.
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := store.ClientFilter{
		Industry: r.URL.Query().Get("industry"),
		Search:   r.URL.Query().Get("search"),
	}

	clients, err := h.ClientService.ListClients(ctx, httpx.OrgIDFromCtx(ctx), filter)
	if err != nil {
		writeServerError(w, r, "failed to list clients", err)
		return
	}

	out := make([]clientResponse, len(clients))
	for i, c := range clients {
		out[i] = toClientResponse(c)
	}
	writeList(w, out)
}

// HandleGet handles GET /api/clients/{id}.
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, err := h.ClientService.GetClient(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, "failed to load client", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientResponse(c))
}

// HandleCreate handles POST /api/clients.
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req clientRequest
	if !checkRequest(w, r, &req) {
		return
	}

	c, err := h.ClientService.CreateClient(ctx, httpx.OrgIDFromCtx(ctx), req.toDomain())
	if err != nil {
		writeServerError(w, r, "failed to create client", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toClientResponse(c))
}

// HandleUpdate handles PUT /api/clients/{id}.
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req clientRequest
	if !checkRequest(w, r, &req) {
		return
	}

	c, err := h.ClientService.UpdateClient(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"), req.toDomain())
	if err != nil {
		writeStoreError(w, r, "failed to update client", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientResponse(c))
}

// HandleDelete handles DELETE /api/clients/{id}.
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.ClientService.DeleteClient(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeStoreError(w, r, "failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
