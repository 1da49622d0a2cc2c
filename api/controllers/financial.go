package controllers

import (
	"context"
	"net/http"

	"github.com/vendaflow/backoffice/api/middleware"
	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/api/validators"
	"github.com/vendaflow/backoffice/pkg/db/models"
	"github.com/vendaflow/backoffice/pkg/logger"
)

type financialService interface {
	List(ctx context.Context, tenantID int64, status string) ([]models.FinancialAccount, error)
}

// FinancialList handles GET /api/financeiro?status=.
func FinancialList(svc financialService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := validators.SanitizeString(r.URL.Query().Get("status"), 20)
		rows, err := svc.List(ctx, middleware.TenantIDFromContext(ctx), status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
