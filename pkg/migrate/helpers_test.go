package migrate

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/vendaflow/backoffice/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testPassword = config.PasswordConfig{
	ArgonMemoryKB:    1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func init() {
	goose.SetLogger(goose.NopLogger())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

func bootstrapOptions() BootstrapOptions {
	return BootstrapOptions{
		DefaultTenantID: 1,
		AdminUsername:   "admin",
		AdminPassword:   "admin123",
		AdminFullName:   "Administrador",
		Password:        testPassword,
		DemoProducts:    true,
	}
}

func mustBootstrap(t *testing.T, conn *gorm.DB) {
	t.Helper()
	require.NoError(t, Bootstrap(context.Background(), conn, bootstrapOptions()))
}

func countRows(t *testing.T, conn *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Table(table).Count(&n).Error)
	return n
}

func productCategory(t *testing.T, conn *gorm.DB, name string) *string {
	t.Helper()
	var row productCategoryRow
	require.NoError(t, conn.Table("products").Select("id, name, category").Where("name = ?", name).Take(&row).Error)
	return row.Category
}
