package controllers

import (
	"context"
	"net/http"

	"github.com/vendaflow/backoffice/api/middleware"
	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/internal/dashboard"
	"github.com/vendaflow/backoffice/pkg/logger"
)

type dashboardService interface {
	Summary(ctx context.Context, tenantID, userID int64) (*dashboard.Summary, error)
}

func Dashboard(svc dashboardService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		summary, err := svc.Summary(ctx, middleware.TenantIDFromContext(ctx), middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
