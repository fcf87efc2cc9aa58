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

type NotesHandler struct {
	NoteService *service.NoteService
}

type noteRequest struct {
	EntityType string `json:"entity_type" validate:"required,oneof=client candidate job application"`
	EntityID   string `json:"entity_id" validate:"required"`
	Body       string `json:"body" validate:"required,max=20000"`
}

type noteUpdateRequest struct {
	Body string `json:"body" validate:"required,max=20000"`
}

type noteResponse struct {
	ID         string `json:"id"`
	OrgID      string `json:"org_id"`
	AuthorID   string `json:"author_id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Body       string `json:"body"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func toNoteResponse(n domain.Note) noteResponse {
	return noteResponse{
		ID:         n.ID,
		OrgID:      n.OrgID,
		AuthorID:   n.AuthorID,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		Body:       n.Body,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  n.UpdatedAt.Format(time.RFC3339),
	}
}

func writeNoteError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidNoteEntity):
		writeValidation(w, map[string]string{"entity_type": "is invalid"})
	case errors.Is(err, service.ErrEmptyNoteBody):
		writeValidation(w, map[string]string{"body": "is required"})
	default:
		writeStoreError(w, r, msg, err)
	}
}

// HandleList handles GET /api/notes.
func (h *NotesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := store.NoteFilter{
		EntityType: r.URL.Query().Get("entity_type"),
		EntityID:   r.URL.Query().Get("entity_id"),
	}

	notes, err := h.NoteService.ListNotes(ctx, httpx.OrgIDFromCtx(ctx), filter)
	if err != nil {
		writeServerError(w, r, "failed to list notes", err)
		return
	}

	out := make([]noteResponse, len(notes))
	for i, n := range notes {
		out[i] = toNoteResponse(n)
	}
	writeList(w, out)
}

// HandleGet handles GET /api/notes/{id}.
func (h *NotesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, err := h.NoteService.GetNote(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, "failed to load note", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toNoteResponse(n))
}

// HandleCreate handles POST /api/notes. The author is always the
// authenticated user.
func (h *NotesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req noteRequest
	if !checkRequest(w, r, &req) {
		return
	}

	n, err := h.NoteService.CreateNote(ctx, httpx.OrgIDFromCtx(ctx), httpx.UserIDFromCtx(ctx), domain.Note{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Body:       req.Body,
	})
	if err != nil {
		writeNoteError(w, r, "failed to create note", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toNoteResponse(n))
}

// HandleUpdate handles PUT /api/notes/{id}.
func (h *NotesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req noteUpdateRequest
	if !checkRequest(w, r, &req) {
		return
	}

	n, err := h.NoteService.UpdateNote(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"), req.Body)
	if err != nil {
		writeNoteError(w, r, "failed to update note", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toNoteResponse(n))
}

// HandleDelete handles DELETE /api/notes/{id}.
func (h *NotesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.NoteService.DeleteNote(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeStoreError(w, r, "failed to delete note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
