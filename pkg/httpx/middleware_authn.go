package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/talentpipehq/talentpipe/pkg/slogx"
)

// SessionClaims is the verified identity attached to a request.
type SessionClaims struct {
	UserID string
	OrgID  string
	Role   string
}

// TokenVerifier verifies a bearer token and returns its claims.
// Implemented by the token service; declared here so httpx does not depend
// on internal packages.
type TokenVerifier interface {
	Verify(token string) (SessionClaims, error)
}

// AuthnMiddleware verifies the bearer token and injects the session claims
// into the request context. Failures produce the in-band authRequired
// sentinel rather than a bare 401.
func AuthnMiddleware(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				WriteAuthRequired(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verify failed", "err", err)
				WriteAuthRequired(w, "token verification failed")
				return
			}

			ctx = contextWithSession(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithSession(ctx context.Context, c SessionClaims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID)
	ctx = context.WithValue(ctx, CtxKeyOrgID, c.OrgID)
	ctx = context.WithValue(ctx, CtxKeyRole, c.Role)
	return ctx
}
