package middleware

import (
	"net/http"

	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/internal/tenants"
	"github.com/vendaflow/backoffice/pkg/logger"
)

// TenantContext resolves the tenant for the authenticated user. Mount it
// after Auth.
func TenantContext(resolver tenants.Resolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			tenant, err := resolver.Resolve(ctx, UserFromContext(ctx))
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = WithTenantID(ctx, tenant.ID)
			if logg != nil {
				ctx = logg.WithTenantID(ctx, tenant.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
