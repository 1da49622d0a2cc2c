package controllers

import (
	"net/http"

	"github.com/vendaflow/backoffice/api/middleware"
	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/api/validators"
	product "github.com/vendaflow/backoffice/internal/products"
	"github.com/vendaflow/backoffice/pkg/logger"
)

// ProductList handles GET /api/produtos?category=&q=&limit=.
func ProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := validators.ParseQueryInt(r, "limit", product.DefaultListLimit, 1, product.MaxListLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query := r.URL.Query()
		items, err := svc.List(ctx, product.ListInput{
			TenantID: middleware.TenantIDFromContext(ctx),
			Category: validators.SanitizeString(query.Get("category"), 100),
			Query:    validators.SanitizeString(query.Get("q"), 100),
			Limit:    limit,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func ProductDetail(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		item, err := svc.Get(ctx, middleware.TenantIDFromContext(ctx), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func ProductCreate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var body product.CreateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		item, err := svc.Create(ctx, middleware.TenantIDFromContext(ctx), body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func ProductLowStock(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.LowStock(ctx, middleware.TenantIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
