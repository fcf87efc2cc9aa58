package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyOrgID  ctxKey = "org_id"
	CtxKeyRole   ctxKey = "role"
)

// UserIDFromCtx returns the authenticated user id, or "" when unauthenticated.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// OrgIDFromCtx returns the tenant id the request is scoped to. Handlers must
// use this value and never an org id from the request body.
func OrgIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyOrgID).(string); ok {
		return v
	}
	return ""
}

// RoleFromCtx returns the authenticated user's role, or "" when unauthenticated.
func RoleFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRole).(string); ok {
		return v
	}
	return ""
}
