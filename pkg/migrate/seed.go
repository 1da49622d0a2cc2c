package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/db/models"
	"gorm.io/gorm"
)

// seeder inserts sample rows into table when it is empty and returns how many it wrote.
type seeder struct {
	table string
	run   func(tx *gorm.DB, tenantID int64, now time.Time) (int64, error)
}

func defaultSeeders() []seeder {
	return []seeder{
		{table: "notifications", run: seedNotifications},
		{table: "financial_accounts", run: seedFinancialAccounts},
	}
}

// seed runs each seeder behind its own savepoint. Under the ignore policy a
// failing seeder is rolled back to its savepoint and the migration continues.
func (m *SchemaMigrator) seed(ctx context.Context, tx *gorm.DB, report *Report) error {
	now := m.opts.Now()
	for _, s := range m.seeders {
		var inserted int64
		err := tx.Transaction(func(sp *gorm.DB) error {
			var count int64
			if err := sp.Table(s.table).Count(&count).Error; err != nil {
				return fmt.Errorf("count %s: %w", s.table, err)
			}
			if count > 0 {
				return nil
			}
			n, err := s.run(sp, m.opts.DefaultTenantID, now)
			inserted = n
			return err
		})

		seedCtx := m.logg.WithField(ctx, "table", s.table)
		if err != nil {
			if m.opts.SeedFailurePolicy == config.SeedFailurePropagate {
				return fmt.Errorf("seed %s: %w", s.table, err)
			}
			report.SeedFailures = append(report.SeedFailures, fmt.Sprintf("%s: %v", s.table, err))
			m.logg.Error(seedCtx, "sample data seeding failed; continuing", err)
			continue
		}
		if inserted > 0 {
			report.Seeded = append(report.Seeded, s.table)
			m.logg.Info(m.logg.WithField(seedCtx, "rows", inserted), "sample data seeded")
		}
	}
	return nil
}

func seedNotifications(tx *gorm.DB, tenantID int64, now time.Time) (int64, error) {
	rows := []models.Notification{
		{
			TenantID: tenantID, Title: "Bem-vindo ao sistema",
			Message: "Seu painel de gestão está pronto para uso.",
			Type:    models.NotificationInfo, Priority: models.PriorityNormal, CreatedAt: now,
		},
		{
			TenantID: tenantID, Title: "Estoque baixo",
			Message: "Alguns produtos atingiram o estoque mínimo. Verifique a reposição.",
			Type:    models.NotificationWarning, Priority: models.PriorityHigh, CreatedAt: now,
		},
		{
			TenantID: tenantID, Title: "Backup concluído",
			Message: "O backup diário dos dados foi concluído com sucesso.",
			Type:    models.NotificationSuccess, Priority: models.PriorityLow, CreatedAt: now,
		},
	}
	res := tx.Create(&rows)
	return res.RowsAffected, res.Error
}

func seedFinancialAccounts(tx *gorm.DB, tenantID int64, now time.Time) (int64, error) {
	day := now.Truncate(24 * time.Hour)
	due := func(days int) *time.Time {
		d := day.AddDate(0, 0, days)
		return &d
	}
	rows := []models.FinancialAccount{
		{
			TenantID: tenantID, Description: "Aluguel da loja", Type: models.AccountPayable,
			Amount: decimal.RequireFromString("2500.00"), DueDate: due(10),
			Status: models.AccountStatusPending, CreatedAt: &now, UpdatedAt: &now,
		},
		{
			TenantID: tenantID, Description: "Fornecedor de bebidas", Type: models.AccountPayable,
			Amount: decimal.RequireFromString("1200.50"), DueDate: due(5),
			Status: models.AccountStatusPending, CreatedAt: &now, UpdatedAt: &now,
		},
		{
			TenantID: tenantID, Description: "Venda a prazo - cliente Maria", Type: models.AccountReceivable,
			Amount: decimal.RequireFromString("350.00"), DueDate: due(15),
			Status: models.AccountStatusPending, CreatedAt: &now, UpdatedAt: &now,
		},
	}
	res := tx.Create(&rows)
	return res.RowsAffected, res.Error
}
