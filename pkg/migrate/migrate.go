package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/pressly/goose/v3"
)

// DefaultDir is the on-disk location of the SQL migrations, relative to the repo root.
const DefaultDir = "pkg/migrate/migrations"

const embeddedDir = "migrations"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// gooseDialect maps a gorm dialector name onto goose's dialect names.
func gooseDialect(name string) (string, error) {
	switch name {
	case "postgres", "pgx":
		return "postgres", nil
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	}
	return "", fmt.Errorf("unsupported dialect %q", name)
}

// prepare configures goose's package-level state. An empty dir selects the
// migrations compiled into the binary.
func prepare(dialect, dir string) (string, error) {
	gd, err := gooseDialect(dialect)
	if err != nil {
		return "", err
	}
	if err := goose.SetDialect(gd); err != nil {
		return "", fmt.Errorf("set goose dialect: %w", err)
	}
	if dir == "" {
		goose.SetBaseFS(embeddedMigrations)
		return embeddedDir, nil
	}
	goose.SetBaseFS(nil)
	return dir, nil
}

// Run executes a goose command (up, down, status, ...) against db.
func Run(ctx context.Context, db *sql.DB, dialect, dir, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	resolved, err := prepare(dialect, dir)
	if err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, resolved, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion moves the database up or down to targetVersion.
func MigrateToVersion(ctx context.Context, db *sql.DB, dialect, dir, targetVersion string) error {
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}
	resolved, err := prepare(dialect, dir)
	if err != nil {
		return err
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if err := goose.UpToContext(ctx, db, resolved, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	default:
		if err := goose.DownToContext(ctx, db, resolved, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}

// EmbeddedFiles lists the SQL migrations compiled into the binary.
func EmbeddedFiles() ([]string, error) {
	return fs.Glob(embeddedMigrations, embeddedDir+"/*.sql")
}
