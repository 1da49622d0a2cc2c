package migrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendaflow/backoffice/pkg/security"
)

func TestBootstrapIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Bootstrap(ctx, conn, bootstrapOptions()))
	require.NoError(t, Bootstrap(ctx, conn, bootstrapOptions()))

	for _, table := range []string{"tenants", "users", "categories", "products", "sales", "sale_items"} {
		assert.True(t, conn.Migrator().HasTable(table), "table %s", table)
	}
	assert.Equal(t, int64(1), countRows(t, conn, "tenants"))
	assert.Equal(t, int64(len(CategoryNames())), countRows(t, conn, "categories"))
	assert.Equal(t, int64(len(demoProducts)), countRows(t, conn, "products"))
	assert.Equal(t, int64(1), countRows(t, conn, "users"))
}

func TestBootstrapHashesAdminPassword(t *testing.T) {
	conn := openTestDB(t)
	mustBootstrap(t, conn)

	var hash string
	require.NoError(t, conn.Table("users").Where("username = ?", "admin").Pluck("password_hash", &hash).Error)
	assert.NotEqual(t, "admin123", hash)

	ok, err := security.VerifyPassword("admin123", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBootstrapSkipsAdminWithoutPassword(t *testing.T) {
	conn := openTestDB(t)
	opts := bootstrapOptions()
	opts.AdminPassword = ""
	opts.DemoProducts = false

	require.NoError(t, Bootstrap(context.Background(), conn, opts))
	assert.Zero(t, countRows(t, conn, "users"))
	assert.Zero(t, countRows(t, conn, "products"))
}

func TestBootstrapKeepsExistingProducts(t *testing.T) {
	conn := openTestDB(t)
	mustBootstrap(t, conn)

	require.NoError(t, conn.Exec("UPDATE products SET stock_quantity = 99 WHERE name = ?", "Arroz Tipo 1 5kg").Error)
	mustBootstrap(t, conn)

	var stock int
	require.NoError(t, conn.Table("products").Where("name = ?", "Arroz Tipo 1 5kg").Pluck("stock_quantity", &stock).Error)
	assert.Equal(t, 99, stock)
}

func TestBootstrapSeedsDemoProductsPerTenant(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()
	mustBootstrap(t, conn)
	_, err := NewSchemaMigrator(conn, nil, Options{}).Run(ctx)
	require.NoError(t, err)

	require.NoError(t, conn.Exec("INSERT INTO tenants (id, name, slug, is_active) VALUES (2, 'Filial', 'filial', TRUE)").Error)
	opts := bootstrapOptions()
	opts.DefaultTenantID = 2
	require.NoError(t, Bootstrap(ctx, conn, opts))

	var first, second int64
	require.NoError(t, conn.Table("products").Where("tenant_id = ?", 1).Count(&first).Error)
	require.NoError(t, conn.Table("products").Where("tenant_id = ?", 2).Count(&second).Error)
	assert.Equal(t, int64(len(demoProducts)), first)
	assert.Equal(t, int64(len(demoProducts)), second)

	require.NoError(t, Bootstrap(ctx, conn, opts))
	assert.Equal(t, int64(2*len(demoProducts)), countRows(t, conn, "products"))
}
