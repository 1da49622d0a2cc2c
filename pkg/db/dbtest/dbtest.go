// Package dbtest opens migrated in-memory SQLite databases for package tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/db"
	"github.com/vendaflow/backoffice/pkg/migrate"
	"gorm.io/gorm"
)

// DefaultTenantID is the tenant created by Open.
const DefaultTenantID int64 = 1

// Open returns a client over a fresh in-memory database that went through the
// full migration pipeline. Sample notifications and financial accounts are
// removed so tests start from empty tables.
func Open(t testing.TB) *db.Client {
	t.Helper()
	goose.SetLogger(goose.NopLogger())

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	cfg := config.DBConfig{
		Driver: config.DBDriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name),
	}
	ctx := context.Background()
	client, err := db.New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	_, err = migrate.Up(ctx, client.DB(), nil, migrate.UpOptions{
		Bootstrap: migrate.BootstrapOptions{DefaultTenantID: DefaultTenantID},
		Schema:    migrate.Options{SeedFailurePolicy: config.SeedFailurePropagate, DefaultTenantID: DefaultTenantID},
	})
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	for _, table := range []string{"notifications", "financial_accounts"} {
		if err := client.DB().Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
	return client
}

// MustCreate inserts value or fails the test.
func MustCreate(t testing.TB, conn *gorm.DB, value any) {
	t.Helper()
	if err := conn.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}
