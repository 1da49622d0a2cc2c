package routes

import (
	"fmt"

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
	"github.com/vendaflow/backoffice/pkg/db"
)

// NewDeps builds the domain services over one database client. Transport
// concerns (pingers, metrics, rate limiting) are left for the caller.
func NewDeps(cfg *config.Config, client *db.Client) (Deps, error) {
	conn := client.DB()

	sessions, err := session.NewManager(session.NewStore(conn), cfg.Session.TTL)
	if err != nil {
		return Deps{}, fmt.Errorf("session manager: %w", err)
	}
	userRepo := users.NewRepository(conn)
	authService, err := auth.NewService(auth.ServiceParams{UserRepo: userRepo, SessionManager: sessions, Password: cfg.Password})
	if err != nil {
		return Deps{}, fmt.Errorf("auth service: %w", err)
	}
	productService, err := product.NewService(product.NewRepository(conn))
	if err != nil {
		return Deps{}, fmt.Errorf("product service: %w", err)
	}
	salesService, err := sales.NewService(sales.NewRepository(conn), notifications.NewRepository(conn), client)
	if err != nil {
		return Deps{}, fmt.Errorf("sales service: %w", err)
	}
	notificationService, err := notifications.NewService(notifications.NewRepository(conn))
	if err != nil {
		return Deps{}, fmt.Errorf("notification service: %w", err)
	}

	return Deps{
		DB:            conn,
		Sessions:      sessions,
		Tenants:       tenants.NewResolver(conn, cfg.Tenant.DefaultID),
		Auth:          authService,
		Users:         userRepo,
		Products:      productService,
		Sales:         salesService,
		Notifications: notificationService,
		Dashboard:     dashboard.NewService(conn),
		Financial:     financial.NewService(conn),
		Reports:       reports.NewService(conn),
	}, nil
}
