package controllers

import (
	"net/http"

	"github.com/vendaflow/backoffice/api/middleware"
	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/api/validators"
	"github.com/vendaflow/backoffice/internal/sales"
	"github.com/vendaflow/backoffice/pkg/logger"
)

func SaleList(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := validators.ParseQueryInt(r, "limit", sales.DefaultListLimit, 1, sales.MaxListLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		rows, err := svc.List(ctx, middleware.TenantIDFromContext(ctx), limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func SaleDetail(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sale, err := svc.Get(ctx, middleware.TenantIDFromContext(ctx), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}

// SaleCreate records a sale for the authenticated operator.
func SaleCreate(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var body sales.CreateSaleRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sale, err := svc.Create(ctx, middleware.TenantIDFromContext(ctx), middleware.UserIDFromContext(ctx), body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithFields(ctx, map[string]any{"sale_id": sale.ID, "sale_code": sale.SaleCode}), "sale.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}
