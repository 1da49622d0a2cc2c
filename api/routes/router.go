package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/vendaflow/backoffice/api/controllers"
	"github.com/vendaflow/backoffice/api/middleware"
	"github.com/vendaflow/backoffice/internal/auth"
	"github.com/vendaflow/backoffice/internal/dashboard"
	"github.com/vendaflow/backoffice/internal/financial"
	"github.com/vendaflow/backoffice/internal/notifications"
	product "github.com/vendaflow/backoffice/internal/products"
	"github.com/vendaflow/backoffice/internal/reports"
	"github.com/vendaflow/backoffice/internal/sales"
	"github.com/vendaflow/backoffice/internal/tenants"
	"github.com/vendaflow/backoffice/internal/users"
	"github.com/vendaflow/backoffice/pkg/auth/session"
	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/logger"
	"github.com/vendaflow/backoffice/pkg/metrics"
)

// RateLimitStore is satisfied by *redis.Client. Leave it nil to disable login
// throttling.
type RateLimitStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Deps carries everything the router mounts. Nil Pingers entries are skipped
// by the readiness check; a nil MetricsHandler leaves /metrics unmounted.
type Deps struct {
	DB             *gorm.DB
	Pingers        map[string]controllers.Pinger
	RateLimitStore RateLimitStore
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	Sessions      session.Resolver
	Tenants       tenants.Resolver
	Auth          auth.Service
	Users         *users.Repository
	Products      product.Service
	Sales         sales.Service
	Notifications notifications.Service
	Dashboard     *dashboard.Service
	Financial     *financial.Service
	Reports       *reports.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Get("/health", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(deps.Pingers, logg))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimitStore, logg)).Post("/auth/login", controllers.AuthLogin(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Sessions, logg))
			r.Get("/auth/me", controllers.AuthMe(deps.Auth, logg))
			r.Post("/auth/logout", controllers.AuthLogout(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.TenantContext(deps.Tenants, logg))

				r.Get("/dashboard", controllers.Dashboard(deps.Dashboard, logg))

				r.Route("/produtos", func(r chi.Router) {
					r.Get("/", controllers.ProductList(deps.Products, logg))
					r.Post("/", controllers.ProductCreate(deps.Products, logg))
					r.Get("/low-stock", controllers.ProductLowStock(deps.Products, logg))
					r.Get("/{id}", controllers.ProductDetail(deps.Products, logg))
				})

				r.Route("/vendas", func(r chi.Router) {
					r.Get("/", controllers.SaleList(deps.Sales, logg))
					r.Post("/", controllers.SaleCreate(deps.Sales, logg))
					r.Get("/{id}", controllers.SaleDetail(deps.Sales, logg))
				})

				r.Route("/notificacoes", func(r chi.Router) {
					r.Get("/", controllers.NotificationList(deps.Notifications, logg))
					r.Post("/read-all", controllers.NotificationMarkAllRead(deps.Notifications, logg))
					r.Post("/{id}/read", controllers.NotificationMarkRead(deps.Notifications, logg))
				})

				r.Get("/financeiro", controllers.FinancialList(deps.Financial, logg))
				r.Get("/relatorios/vendas-diarias", controllers.DailySalesReport(deps.Reports, logg))
			})
		})

		if !cfg.App.IsProd() {
			r.Route("/debug", func(r chi.Router) {
				r.Get("/users", controllers.DebugUsers(deps.Users, logg))
				r.Get("/tables", controllers.DebugTables(deps.DB, logg))
			})
		}
	})

	return r
}
