package migrate

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Check is the presence of one expected column after migration.
type Check struct {
	Table  string
	Column string
	OK     bool
}

func (c Check) String() string {
	status := "OK"
	if !c.OK {
		status = "MISSING"
	}
	return fmt.Sprintf("%s.%s %s", c.Table, c.Column, status)
}

// Report summarizes one migration run.
type Report struct {
	CreatedTables        []string
	AddedColumns         []string
	CategoriesBackfilled int64
	SaleCodesBackfilled  int64
	SaleDatesBackfilled  int64
	Seeded               []string
	SeedFailures         []string
	Checks               []Check
}

// Missing returns the checks that failed.
func (r *Report) Missing() []Check {
	if r == nil {
		return nil
	}
	var missing []Check
	for _, c := range r.Checks {
		if !c.OK {
			missing = append(missing, c)
		}
	}
	return missing
}

// Err aggregates missing columns. Verification is advisory; callers log it.
func (r *Report) Err() error {
	var err error
	for _, c := range r.Missing() {
		err = multierr.Append(err, fmt.Errorf("column %s.%s missing", c.Table, c.Column))
	}
	return err
}

func (r *Report) fields() map[string]any {
	return map[string]any{
		"tables_created":        len(r.CreatedTables),
		"columns_added":         len(r.AddedColumns),
		"categories_backfilled": r.CategoriesBackfilled,
		"sale_codes_backfilled": r.SaleCodesBackfilled,
		"sale_dates_backfilled": r.SaleDatesBackfilled,
		"seeded":                r.Seeded,
		"seed_failures":         len(r.SeedFailures),
	}
}

// expectedColumns is the column plan plus the columns the API cannot live without.
func expectedColumns() []Check {
	checks := make([]Check, 0, len(columnPlan)+6)
	for _, col := range columnPlan {
		checks = append(checks, Check{Table: col.Table, Column: col.Column})
	}
	checks = append(checks,
		Check{Table: "notifications", Column: "is_read"},
		Check{Table: "user_sessions", Column: "session_token"},
		Check{Table: "user_sessions", Column: "expires_at"},
		Check{Table: "sale_items", Column: "total_price"},
		Check{Table: "reports", Column: "parameters"},
		Check{Table: "users", Column: "password_hash"},
	)
	return checks
}

// Verify re-reads the catalog for every expected column.
func Verify(ctx context.Context, db *gorm.DB) []Check {
	migrator := db.WithContext(ctx).Migrator()
	checks := expectedColumns()
	for i := range checks {
		checks[i].OK = migrator.HasTable(checks[i].Table) && migrator.HasColumn(checks[i].Table, checks[i].Column)
	}
	return checks
}
