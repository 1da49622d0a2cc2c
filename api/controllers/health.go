package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/vendaflow/backoffice/api/responses"
	"github.com/vendaflow/backoffice/pkg/config"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"github.com/vendaflow/backoffice/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by *db.Client and *redis.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive answers GET /health without touching dependencies.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   cfg.App.Version,
		})
	}
}

// HealthReady pings every named dependency; nil pingers are skipped.
func HealthReady(deps map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		var failed []string
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				failed = append(failed, name)
				continue
			}
			checks[name] = "up"
		}
		if len(failed) > 0 {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(checks)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
