package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/security"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BootstrapOptions controls the reference rows written by Bootstrap.
type BootstrapOptions struct {
	DefaultTenantID int64
	AdminUsername   string
	AdminPassword   string
	AdminFullName   string
	Password        config.PasswordConfig
	DemoProducts    bool
}

// BootstrapOptionsFromConfig maps the process configuration onto BootstrapOptions.
func BootstrapOptionsFromConfig(cfg *config.Config) BootstrapOptions {
	return BootstrapOptions{
		DefaultTenantID: cfg.Tenant.DefaultID,
		AdminUsername:   cfg.Bootstrap.AdminUsername,
		AdminPassword:   cfg.Bootstrap.AdminPassword,
		AdminFullName:   cfg.Bootstrap.AdminFullName,
		Password:        cfg.Password,
		DemoProducts:    cfg.Bootstrap.DemoProducts,
	}
}

type demoProduct struct {
	name  string
	price string
	stock int
}

var demoProducts = []demoProduct{
	{name: "Smartphone Galaxy A15", price: "1299.90", stock: 8},
	{name: "Fone de Ouvido Bluetooth", price: "149.90", stock: 3},
	{name: "Arroz Tipo 1 5kg", price: "27.90", stock: 40},
	{name: "Feijão Carioca 1kg", price: "8.49", stock: 4},
	{name: "Detergente Neutro 500ml", price: "2.79", stock: 60},
	{name: "Sabão em Pó 1kg", price: "14.90", stock: 25},
	{name: "Refrigerante Cola 2L", price: "9.99", stock: 30},
	{name: "Suco de Laranja 1L", price: "7.50", stock: 2},
	{name: "Caderno Universitário 10 Matérias", price: "24.90", stock: 15},
}

// Bootstrap ensures the base tables exist and writes reference data. Every step
// tolerates existing rows, so running it repeatedly is harmless.
func Bootstrap(ctx context.Context, conn *gorm.DB, opts BootstrapOptions) error {
	if conn == nil {
		return fmt.Errorf("db is required")
	}
	if opts.DefaultTenantID <= 0 {
		opts.DefaultTenantID = 1
	}

	return conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSchema(tx); err != nil {
			return err
		}
		for _, table := range baseTables() {
			if tx.Migrator().HasTable(table) {
				continue
			}
			if err := tx.Migrator().CreateTable(table); err != nil {
				return fmt.Errorf("create table %T: %w", table, err)
			}
		}

		if err := seedDefaultTenant(tx, opts.DefaultTenantID); err != nil {
			return err
		}
		if err := seedCategories(tx); err != nil {
			return err
		}
		if err := seedAdmin(tx, opts); err != nil {
			return err
		}
		if opts.DemoProducts {
			if err := seedDemoProducts(tx, opts.DefaultTenantID); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedDefaultTenant(tx *gorm.DB, id int64) error {
	tenant := tenantTable{ID: id, Name: "Loja Principal", Slug: "principal", IsActive: true}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tenant).Error; err != nil {
		return fmt.Errorf("seed default tenant: %w", err)
	}
	return syncSequence(tx, "tenants")
}

func seedCategories(tx *gorm.DB) error {
	rows := make([]categoryTable, 0, len(CategoryRules)+1)
	for _, name := range CategoryNames() {
		rows = append(rows, categoryTable{Name: name})
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

func seedAdmin(tx *gorm.DB, opts BootstrapOptions) error {
	username := strings.TrimSpace(opts.AdminUsername)
	if username == "" || opts.AdminPassword == "" {
		return nil
	}
	hash, err := security.HashPassword(opts.AdminPassword, opts.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := userTable{Username: username, PasswordHash: hash, FullName: opts.AdminFullName, IsActive: true}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(&admin)
	if res.Error != nil {
		return fmt.Errorf("seed admin user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil
	}
	return assignTenant(tx, "users", admin.ID, opts.DefaultTenantID)
}

// seedDemoProducts inserts each demo product unless the tenant already has one
// with the same name. Base product tables carry no unique key, hence the
// explicit lookup. Before the migrator adds products.tenant_id every row
// belongs to the default tenant.
func seedDemoProducts(tx *gorm.DB, tenantID int64) error {
	scoped := tx.Migrator().HasColumn("products", "tenant_id")
	for _, demo := range demoProducts {
		lookup := tx.Table("products").Where("name = ?", demo.name)
		if scoped {
			lookup = lookup.Where("tenant_id = ?", tenantID)
		}
		var count int64
		if err := lookup.Count(&count).Error; err != nil {
			return fmt.Errorf("lookup demo product %q: %w", demo.name, err)
		}
		if count > 0 {
			continue
		}
		row := productTable{
			Name:          demo.name,
			Price:         decimal.RequireFromString(demo.price),
			StockQuantity: demo.stock,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("seed demo product %q: %w", demo.name, err)
		}
		if err := assignTenant(tx, "products", row.ID, tenantID); err != nil {
			return err
		}
	}
	return nil
}

// assignTenant stamps tenantID on a freshly inserted row once the migrator has
// added tenant_id to table. Earlier rows pick it up from the column default.
func assignTenant(tx *gorm.DB, table string, id, tenantID int64) error {
	if !tx.Migrator().HasColumn(table, "tenant_id") {
		return nil
	}
	if err := tx.Table(table).Where("id = ?", id).Update("tenant_id", tenantID).Error; err != nil {
		return fmt.Errorf("assign %s %d to tenant %d: %w", table, id, tenantID, err)
	}
	return nil
}

// syncSequence realigns a Postgres serial after rows were inserted with explicit ids.
func syncSequence(tx *gorm.DB, table string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	stmt := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT COALESCE(MAX(id), 0) FROM %s), 1))",
		table, table,
	)
	if err := tx.Exec(stmt).Error; err != nil {
		return fmt.Errorf("sync %s sequence: %w", table, err)
	}
	return nil
}
