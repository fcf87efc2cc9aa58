package http

import (
	"errors"
	"net/http"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/service"
	"github.com/talentpipehq/talentpipe/pkg/httpx"
)

// UsersHandler covers org membership management. All routes are admin-only,
// enforced in the router.
type UsersHandler struct {
	UserService *service.UserService
}

type inviteUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Password string `json:"password" validate:"required,min=12,max=128"`
	Role     string `json:"role" validate:"required,oneof=admin recruiter hiring_manager demo_viewer"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin recruiter hiring_manager demo_viewer"`
}

func writeUserError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		writeValidation(w, map[string]string{"email": "is already registered"})
	case errors.Is(err, service.ErrInvalidRole):
		writeValidation(w, map[string]string{"role": "is invalid"})
	default:
		writeStoreError(w, r, msg, err)
	}
}

// HandleList handles GET /api/users.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.UserService.ListUsers(ctx, httpx.OrgIDFromCtx(ctx))
	if err != nil {
		writeServerError(w, r, "failed to list users", err)
		return
	}

	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	writeList(w, out)
}

// HandleInvite handles POST /api/users.
func (h *UsersHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req inviteUserRequest
	if !checkRequest(w, r, &req) {
		return
	}

	u, err := h.UserService.InviteUser(ctx, httpx.OrgIDFromCtx(ctx), service.InviteUserParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		writeUserError(w, r, "failed to invite user", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(u))
}

// HandleChangeRole handles PUT /api/users/{id}/role.
func (h *UsersHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req changeRoleRequest
	if !checkRequest(w, r, &req) {
		return
	}

	err := h.UserService.ChangeRole(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id"), domain.Role(req.Role))
	if err != nil {
		writeUserError(w, r, "failed to change role", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove handles DELETE /api/users/{id}.
func (h *UsersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.UserService.RemoveUser(ctx, httpx.OrgIDFromCtx(ctx), r.PathValue("id")); err != nil {
		writeStoreError(w, r, "failed to remove user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
