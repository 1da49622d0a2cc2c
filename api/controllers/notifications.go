package controllers

import (
	"net/http"

	"github.com/vendaflow/backoffice/api/middleware"
	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/api/validators"
	"github.com/vendaflow/backoffice/internal/notifications"
	"github.com/vendaflow/backoffice/pkg/logger"
)

// NotificationList handles GET /api/notificacoes?unreadOnly=&limit=.
func NotificationList(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		unreadOnly, err := validators.ParseQueryBool(r, "unreadOnly")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", notifications.DefaultLimit, 1, notifications.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.List(ctx, notifications.ListParams{
			TenantID:   middleware.TenantIDFromContext(ctx),
			UserID:     middleware.UserIDFromContext(ctx),
			Limit:      limit,
			UnreadOnly: unreadOnly,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func NotificationMarkRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.MarkRead(ctx, middleware.TenantIDFromContext(ctx), middleware.UserIDFromContext(ctx), id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, "notification marked as read")
	}
}

func NotificationMarkAllRead(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		count, err := svc.MarkAllRead(ctx, middleware.TenantIDFromContext(ctx), middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"updated": count})
	}
}
