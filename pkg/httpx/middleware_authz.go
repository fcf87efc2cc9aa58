package httpx

import "net/http"

// RequireAnyRole the caller must have one of the listed roles.
func RequireAnyRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, r := range required {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[RoleFromCtx(r.Context())]; ok {
				next.ServeHTTP(w, r)
				return
			}

			WriteJSON(w, http.StatusForbidden, map[string]any{
				"error":             "forbidden",
				"error_description": "insufficient role",
			})
		})
	}
}

// DenyRole blocks the listed roles. Used to keep demo viewers read-only on
// mutation endpoints.
func DenyRole(denied ...string) Middleware {
	block := make(map[string]struct{}, len(denied))
	for _, r := range denied {
		block[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := block[RoleFromCtx(r.Context())]; ok {
				WriteJSON(w, http.StatusForbidden, map[string]any{
					"error":             "forbidden",
					"error_description": "role is read-only",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
