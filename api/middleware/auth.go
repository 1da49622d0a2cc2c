package middleware

import (
	"errors"
	"net/http"

	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/api/validators"
	"github.com/vendaflow/backoffice/pkg/auth/session"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"github.com/vendaflow/backoffice/pkg/logger"
)

const unauthenticatedMessage = "authentication required"

// Auth resolves the bearer token to a live session and seeds the request
// context with the user. Every failure yields the same 401 body.
func Auth(resolver session.Resolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := validators.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, unauthenticatedMessage))
				return
			}

			user, err := resolver.Resolve(ctx, token)
			if err != nil {
				if errors.Is(err, session.ErrInvalidSession) {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, unauthenticatedMessage))
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validate session"))
				return
			}

			ctx = WithUser(ctx, user)
			ctx = withSessionToken(ctx, token)
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
