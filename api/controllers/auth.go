package controllers

import (
	"net/http"

	"github.com/vendaflow/backoffice/api/middleware"
	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/api/validators"
	"github.com/vendaflow/backoffice/internal/auth"
	"github.com/vendaflow/backoffice/pkg/auth/session"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"github.com/vendaflow/backoffice/pkg/logger"
)

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		meta := session.Metadata{
			IPAddress: middleware.ClientIP(r),
			UserAgent: validators.SanitizeString(r.UserAgent(), 255),
		}
		result, err := svc.Login(r.Context(), body, meta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthMe returns the authenticated user without its password digest.
func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.Me(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// AuthLogout deletes the presented session. Repeating it is harmless.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), middleware.SessionTokenFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "logged out")
	}
}
