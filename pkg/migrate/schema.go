package migrate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/logger"
	"gorm.io/gorm"
)

// schemaLockKey serializes schema changes across processes on Postgres.
const schemaLockKey int64 = 7_204_117_001

type columnSpec struct {
	Table   string
	Column  string
	Type    string
	Default string
	Tenant  bool // default to the configured tenant instead of Default
}

func (c columnSpec) String() string {
	return c.Table + "." + c.Column
}

func (c columnSpec) ddl(tenantID int64) string {
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.Table, c.Column, c.Type)
	def := c.Default
	if c.Tenant {
		def = strconv.FormatInt(tenantID, 10)
	}
	if def != "" {
		stmt += " DEFAULT " + def
	}
	return stmt
}

// columnPlan lists every column added after a table's first release.
var columnPlan = []columnSpec{
	{Table: "products", Column: "category", Type: "VARCHAR(100)", Default: "'Geral'"},
	{Table: "products", Column: "min_stock", Type: "INTEGER", Default: "5"},
	{Table: "products", Column: "is_active", Type: "BOOLEAN", Default: "TRUE"},
	{Table: "products", Column: "barcode", Type: "VARCHAR(50)"},
	{Table: "products", Column: "cost_price", Type: "DECIMAL(10,2)", Default: "0"},
	{Table: "products", Column: "tenant_id", Type: "INTEGER", Tenant: true},
	{Table: "products", Column: "updated_at", Type: "TIMESTAMP"},

	{Table: "sales", Column: "sale_code", Type: "VARCHAR(20)"},
	{Table: "sales", Column: "total_items", Type: "INTEGER", Default: "0"},
	{Table: "sales", Column: "payment_method", Type: "VARCHAR(30)", Default: "'dinheiro'"},
	{Table: "sales", Column: "status", Type: "VARCHAR(20)", Default: "'concluida'"},
	{Table: "sales", Column: "tenant_id", Type: "INTEGER", Tenant: true},
	{Table: "sales", Column: "user_id", Type: "INTEGER"},
	{Table: "sales", Column: "sale_date", Type: "TIMESTAMP"},

	{Table: "financial_accounts", Column: "tenant_id", Type: "INTEGER", Tenant: true},
	{Table: "financial_accounts", Column: "due_date", Type: "DATE"},
	{Table: "financial_accounts", Column: "status", Type: "VARCHAR(20)", Default: "'pendente'"},
	{Table: "financial_accounts", Column: "created_at", Type: "TIMESTAMP"},
	{Table: "financial_accounts", Column: "updated_at", Type: "TIMESTAMP"},

	{Table: "users", Column: "tenant_id", Type: "INTEGER", Tenant: true},
	{Table: "users", Column: "email", Type: "VARCHAR(255)"},
	{Table: "users", Column: "role", Type: "VARCHAR(30)", Default: "'operator'"},
	{Table: "users", Column: "last_login_at", Type: "TIMESTAMP"},
}

var indexPlan = []string{
	"CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)",
	"CREATE INDEX IF NOT EXISTS idx_products_is_active ON products (is_active)",
	"CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales (sale_date)",
	"CREATE INDEX IF NOT EXISTS idx_sales_tenant_id ON sales (tenant_id)",
	"CREATE INDEX IF NOT EXISTS idx_notifications_is_read ON notifications (is_read)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_sessions_token ON user_sessions (session_token)",
	"CREATE INDEX IF NOT EXISTS idx_user_sessions_expires_at ON user_sessions (expires_at)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_sales_sale_code ON sales (sale_code)",
}

// Options tune a SchemaMigrator run.
type Options struct {
	SeedFailurePolicy string
	DefaultTenantID   int64
	Now               func() time.Time
}

// OptionsFromConfig maps the process configuration onto migrator Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SeedFailurePolicy: cfg.Migrate.SeedFailurePolicy,
		DefaultTenantID:   cfg.Tenant.DefaultID,
	}
}

// SchemaMigrator brings an existing database up to the current shape by
// inspecting the catalog instead of tracking versions.
type SchemaMigrator struct {
	db      *gorm.DB
	logg    *logger.Logger
	opts    Options
	seeders []seeder
}

func NewSchemaMigrator(db *gorm.DB, logg *logger.Logger, opts Options) *SchemaMigrator {
	if logg == nil {
		logg = logger.Nop()
	}
	opts.SeedFailurePolicy = strings.ToLower(strings.TrimSpace(opts.SeedFailurePolicy))
	if opts.SeedFailurePolicy == "" {
		opts.SeedFailurePolicy = config.SeedFailureIgnore
	}
	if opts.DefaultTenantID <= 0 {
		opts.DefaultTenantID = 1
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &SchemaMigrator{db: db, logg: logg, opts: opts, seeders: defaultSeeders()}
}

// Run applies pending changes and then verifies the resulting catalog.
func (m *SchemaMigrator) Run(ctx context.Context) (*Report, error) {
	report, err := m.Apply(ctx)
	if err != nil {
		return nil, err
	}
	report.Checks = Verify(ctx, m.db)
	if verr := report.Err(); verr != nil {
		m.logg.Warn(m.logg.WithField(ctx, "missing", verr.Error()), "schema verification found missing columns")
	}
	return report, nil
}

// Apply runs every step inside one transaction. Any error before commit rolls
// the whole run back, DDL included.
func (m *SchemaMigrator) Apply(ctx context.Context) (*Report, error) {
	if m.db == nil {
		return nil, fmt.Errorf("db is required")
	}
	report := &Report{}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSchema(tx); err != nil {
			return err
		}
		if err := requireBaseTables(tx); err != nil {
			return err
		}
		if err := m.ensureTables(ctx, tx, report); err != nil {
			return err
		}
		if err := m.ensureColumns(ctx, tx, report); err != nil {
			return err
		}
		if err := m.backfill(ctx, tx, report); err != nil {
			return err
		}
		if err := ensureIndexes(tx); err != nil {
			return err
		}
		return m.seed(ctx, tx, report)
	})
	if err != nil {
		return nil, fmt.Errorf("schema migration rolled back: %w", err)
	}

	m.logg.Info(m.logg.WithFields(ctx, report.fields()), "schema migration committed")
	return report, nil
}

func (m *SchemaMigrator) ensureTables(ctx context.Context, tx *gorm.DB, report *Report) error {
	for _, table := range newTables() {
		if tx.Migrator().HasTable(table) {
			continue
		}
		if err := tx.Migrator().CreateTable(table); err != nil {
			return fmt.Errorf("create table %T: %w", table, err)
		}
		name := tableName(tx, table)
		report.CreatedTables = append(report.CreatedTables, name)
		m.logg.Info(m.logg.WithField(ctx, "table", name), "table created")
	}
	return nil
}

func (m *SchemaMigrator) ensureColumns(ctx context.Context, tx *gorm.DB, report *Report) error {
	for _, col := range columnPlan {
		added, err := ensureColumn(tx, col, m.opts.DefaultTenantID)
		if err != nil {
			return err
		}
		if added {
			report.AddedColumns = append(report.AddedColumns, col.String())
			m.logg.Info(m.logg.WithField(ctx, "column", col.String()), "column added")
		}
	}
	return nil
}

// ensureColumn adds col when the catalog does not list it. The check and the
// ALTER are not atomic; callers hold lockSchema on Postgres.
func ensureColumn(tx *gorm.DB, col columnSpec, tenantID int64) (bool, error) {
	if !tx.Migrator().HasTable(col.Table) {
		return false, fmt.Errorf("table %s does not exist; run bootstrap first", col.Table)
	}
	if tx.Migrator().HasColumn(col.Table, col.Column) {
		return false, nil
	}
	if err := tx.Exec(col.ddl(tenantID)).Error; err != nil {
		return false, fmt.Errorf("add column %s: %w", col, err)
	}
	return true, nil
}

func requireBaseTables(tx *gorm.DB) error {
	for _, table := range []string{"users", "products", "sales"} {
		if !tx.Migrator().HasTable(table) {
			return fmt.Errorf("table %s does not exist; run bootstrap first", table)
		}
	}
	return nil
}

func ensureIndexes(tx *gorm.DB) error {
	for _, stmt := range indexPlan {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

func lockSchema(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", schemaLockKey).Error; err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}
	return nil
}

func tableName(tx *gorm.DB, model any) string {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Table
}
