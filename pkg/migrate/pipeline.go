package migrate

import (
	"context"
	"fmt"

	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/logger"
	"gorm.io/gorm"
)

// UpOptions configure the full migration pipeline.
type UpOptions struct {
	Bootstrap BootstrapOptions
	Schema    Options
	// GooseDir overrides the embedded SQL migrations with a directory on disk.
	GooseDir string
}

// UpOptionsFromConfig derives pipeline options from the process configuration.
func UpOptionsFromConfig(cfg *config.Config) UpOptions {
	return UpOptions{
		Bootstrap: BootstrapOptionsFromConfig(cfg),
		Schema:    OptionsFromConfig(cfg),
		GooseDir:  cfg.Migrate.Dir,
	}
}

// Up runs the bootstrapper, the incremental migrator and the versioned SQL
// migrations in that order, then verifies the catalog.
func Up(ctx context.Context, conn *gorm.DB, logg *logger.Logger, opts UpOptions) (*Report, error) {
	if logg == nil {
		logg = logger.Nop()
	}

	logg.Info(ctx, "bootstrapping base schema")
	if err := Bootstrap(ctx, conn, opts.Bootstrap); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	logg.Info(ctx, "applying incremental schema changes")
	report, err := NewSchemaMigrator(conn, logg, opts.Schema).Apply(ctx)
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("extracting sql.DB: %w", err)
	}
	logg.Info(ctx, "applying versioned SQL migrations")
	if err := Run(ctx, sqlDB, conn.Dialector.Name(), opts.GooseDir, "up"); err != nil {
		return nil, err
	}

	report.Checks = Verify(ctx, conn)
	if verr := report.Err(); verr != nil {
		logg.Warn(logg.WithField(ctx, "missing", verr.Error()), "schema verification found missing columns")
	}
	return report, nil
}
