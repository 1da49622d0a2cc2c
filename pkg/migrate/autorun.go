package migrate

import (
	"context"

	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/db"
	"github.com/vendaflow/backoffice/pkg/logger"
)

// MaybeRunDev runs the full pipeline before the API starts serving when the
// app is in dev mode and AUTO_MIGRATE is set.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": client.Dialect()})
	logg.Info(ctx, "running migrations (dev auto-run)")

	report, err := Up(ctx, client.DB(), logg, UpOptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	logg.Info(logg.WithFields(ctx, report.fields()), "migrations completed")
	return nil
}
