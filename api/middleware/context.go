package middleware

import (
	"context"

	"github.com/vendaflow/backoffice/pkg/db/models"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxUser     contextKey = "user"
	ctxTenantID contextKey = "tenant_id"
	ctxToken    contextKey = "session_token"
)

func UserIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxUserID).(int64); ok {
		return v
	}
	return 0
}

// UserFromContext returns the authenticated user, or nil outside the auth guard.
func UserFromContext(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxUser).(*models.User); ok {
		return v
	}
	return nil
}

func TenantIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxTenantID).(int64); ok {
		return v
	}
	return 0
}

// SessionTokenFromContext returns the bearer token the request authenticated with.
func SessionTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxToken).(string); ok {
		return v
	}
	return ""
}

// WithUser injects the user and its identifier into the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUser, user)
	if user != nil {
		ctx = context.WithValue(ctx, ctxUserID, user.ID)
	}
	return ctx
}

// WithTenantID injects the tenant identifier into the context for downstream handlers.
func WithTenantID(ctx context.Context, tenantID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTenantID, tenantID)
}

func withSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxToken, token)
}
