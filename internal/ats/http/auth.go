package http

import (
	"errors"
	"net/http"

	"github.com/talentpipehq/talentpipe/internal/ats/domain"
	"github.com/talentpipehq/talentpipe/internal/ats/service"
	"github.com/talentpipehq/talentpipe/pkg/httpx"
	"github.com/talentpipehq/talentpipe/pkg/slogx"
)

// AuthHandler handles signup, login and the current-user endpoint.
type AuthHandler struct {
	TokenService *service.TokenService
	OrgService   *service.OrgService
	UserService  *service.UserService
}

type registerRequest struct {
	OrgName  string `json:"org_name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Password string `json:"password" validate:"required,min=12,max=128"`
}

type userResponse struct {
	ID    string `json:"id"`
	OrgID string `json:"org_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        userResponse `json:"user"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		OrgID: u.OrgID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}

// HandleRegister handles POST /api/auth/register. It creates the
// organization with its first admin and signs them straight in.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if !checkRequest(w, r, &req) {
		return
	}

	_, admin, err := h.OrgService.Register(ctx, service.RegisterParams{
		OrgName:  req.OrgName,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgSlugTaken):
			writeValidation(w, map[string]string{"org_name": "an organization with this name already exists"})
		case errors.Is(err, service.ErrEmailTaken):
			writeValidation(w, map[string]string{"email": "already registered"})
		default:
			writeServerError(w, r, "failed to register organization", err)
		}
		return
	}

	token, expiresIn, err := h.TokenService.Issue(admin)
	if err != nil {
		writeServerError(w, r, "failed to issue token", err)
		return
	}

	log.Info("organization registered", "org_id", admin.OrgID, "user_id", admin.ID)
	httpx.WriteJSON(w, http.StatusCreated, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        toUserResponse(admin),
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles POST /api/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if !checkRequest(w, r, &req) {
		return
	}

	user, token, expiresIn, err := h.TokenService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteAuthRequired(w, "invalid email or password")
			return
		}
		writeServerError(w, r, "login failed", err)
		return
	}

	log.Info("user logged in", "user_id", user.ID, "org_id", user.OrgID)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        toUserResponse(user),
	})
}

// HandleMe handles GET /api/auth/me for the authenticated user.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UserService.GetUserByID(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeStoreError(w, r, "failed to load user", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
