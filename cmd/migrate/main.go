package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/db"
	"github.com/vendaflow/backoffice/pkg/logger"
	"github.com/vendaflow/backoffice/pkg/migrate"
)

const banner = "============================================================"

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|bootstrap|migrate|verify|status|down|version|create|validate")
	dir := flag.String("dir", "", "goose migrations directory (default: migrations embedded in the binary)")
	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	// Commands that do NOT require DB or config
	switch *cmd {
	case "create":
		if *name == "" {
			fail("missing -name for create", nil)
		}
		target := *dir
		if target == "" {
			target = migrate.DefaultDir
		}
		path, err := migrate.CreateSQLMigration(target, *name, time.Now().UTC())
		if err != nil {
			fail("failed to create migration", err)
		}
		fmt.Println("created migration:", path)
		return

	case "validate":
		if err := migrate.ValidateDir(*dir); err != nil {
			fail("migration validation failed", err)
		}
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	if *dir != "" {
		cfg.Migrate.Dir = *dir
	}
	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)
	dialect := dbClient.Dialect()

	printBanner("migration: " + *cmd)

	switch *cmd {
	case "up":
		report, err := migrate.Up(ctx, dbClient.DB(), logg, migrate.UpOptionsFromConfig(cfg))
		if err != nil {
			fail("migration failed", err)
		}
		printReport(report)

	case "bootstrap":
		if err := migrate.Bootstrap(ctx, dbClient.DB(), migrate.BootstrapOptionsFromConfig(cfg)); err != nil {
			fail("bootstrap failed", err)
		}

	case "migrate":
		report, err := migrate.NewSchemaMigrator(dbClient.DB(), logg, migrate.OptionsFromConfig(cfg)).Run(ctx)
		if err != nil {
			fail("incremental migration failed", err)
		}
		printReport(report)

	case "verify":
		report := &migrate.Report{Checks: migrate.Verify(ctx, dbClient.DB())}
		printReport(report)
		if err := report.Err(); err != nil {
			fail("verification failed", err)
		}

	case "status", "down":
		if err := migrate.Run(ctx, sqlDB, dialect, cfg.Migrate.Dir, *cmd); err != nil {
			fail("goose "+*cmd+" failed", err)
		}

	case "version":
		if *version == "" {
			fail("missing -version for version command", nil)
		}
		if err := migrate.MigrateToVersion(ctx, sqlDB, dialect, cfg.Migrate.Dir, *version); err != nil {
			fail("goose version migrate failed", err)
		}

	default:
		fail("unknown -cmd value: "+*cmd, nil)
	}

	printBanner("migration finished successfully")
}

func printBanner(title string) {
	fmt.Println(banner)
	fmt.Println(" " + title)
	fmt.Println(banner)
}

func printReport(report *migrate.Report) {
	if report == nil {
		return
	}
	if len(report.CreatedTables) > 0 {
		fmt.Println("tables created:  ", strings.Join(report.CreatedTables, ", "))
	}
	if len(report.AddedColumns) > 0 {
		fmt.Println("columns added:   ", strings.Join(report.AddedColumns, ", "))
	}
	if len(report.Seeded) > 0 {
		fmt.Println("tables seeded:   ", strings.Join(report.Seeded, ", "))
	}
	for _, failure := range report.SeedFailures {
		fmt.Println("seed skipped:    ", failure)
	}
	fmt.Printf("backfilled:       %d categories, %d sale codes, %d sale dates\n",
		report.CategoriesBackfilled, report.SaleCodesBackfilled, report.SaleDatesBackfilled)

	fmt.Println("verification:")
	for _, check := range report.Checks {
		fmt.Println("  " + check.String())
	}
	if err := report.Err(); err != nil {
		fmt.Println("WARNING: verification found missing columns:", err)
	}
}

func fail(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	printBanner("migration FAILED")
	os.Exit(1)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
