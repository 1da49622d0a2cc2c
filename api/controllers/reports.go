package controllers

import (
	"context"
	"net/http"

	"github.com/vendaflow/backoffice/api/middleware"
	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/api/validators"
	"github.com/vendaflow/backoffice/internal/reports"
	"github.com/vendaflow/backoffice/pkg/db/models"
	"github.com/vendaflow/backoffice/pkg/logger"
)

type reportsService interface {
	DailySales(ctx context.Context, tenantID int64, days int) ([]models.DailySales, error)
}

// DailySalesReport handles GET /api/relatorios/vendas-diarias?days=.
func DailySalesReport(svc reportsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		days, err := validators.ParseQueryInt(r, "days", reports.DefaultDays, 1, reports.MaxDays)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		rows, err := svc.DailySales(ctx, middleware.TenantIDFromContext(ctx), days)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
