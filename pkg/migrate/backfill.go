package migrate

import (
	"context"
	"fmt"

	"github.com/vendaflow/backoffice/pkg/db/models"
	"gorm.io/gorm"
)

func (m *SchemaMigrator) backfill(ctx context.Context, tx *gorm.DB, report *Report) error {
	var err error
	if report.CategoriesBackfilled, err = backfillCategories(tx); err != nil {
		return err
	}
	if report.SaleCodesBackfilled, err = backfillSaleCodes(tx); err != nil {
		return err
	}
	if report.SaleDatesBackfilled, err = backfillSaleDates(tx); err != nil {
		return err
	}
	return nil
}

type productCategoryRow struct {
	ID       int64
	Name     string
	Category *string
}

// backfillCategories reassigns products still on NULL or the generic category
// using CategoryFor. Each row is written at most once.
func backfillCategories(tx *gorm.DB) (int64, error) {
	var rows []productCategoryRow
	err := tx.Table("products").
		Select("id, name, category").
		Where("category IS NULL OR category = ?", models.DefaultCategory).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return 0, fmt.Errorf("load uncategorized products: %w", err)
	}

	var updated int64
	for _, row := range rows {
		target, ok := CategoryFor(row.Name)
		if !ok {
			if row.Category != nil {
				continue
			}
			target = models.DefaultCategory
		}
		if row.Category != nil && *row.Category == target {
			continue
		}
		res := tx.Table("products").Where("id = ?", row.ID).Update("category", target)
		if res.Error != nil {
			return updated, fmt.Errorf("categorize product %d: %w", row.ID, res.Error)
		}
		updated += res.RowsAffected
	}
	return updated, nil
}

// backfillSaleCodes gives every sale without a code its V%04d code.
func backfillSaleCodes(tx *gorm.DB) (int64, error) {
	var ids []int64
	if err := tx.Table("sales").Where("sale_code IS NULL").Order("id").Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("load sales without code: %w", err)
	}

	var updated int64
	for _, id := range ids {
		res := tx.Table("sales").
			Where("id = ? AND sale_code IS NULL", id).
			Update("sale_code", models.SaleCodeFor(id))
		if res.Error != nil {
			return updated, fmt.Errorf("assign sale code %d: %w", id, res.Error)
		}
		updated += res.RowsAffected
	}
	return updated, nil
}

// backfillSaleDates copies created_at into sale_date for sales recorded before the column existed.
func backfillSaleDates(tx *gorm.DB) (int64, error) {
	if !tx.Migrator().HasColumn("sales", "created_at") {
		return 0, nil
	}
	res := tx.Exec("UPDATE sales SET sale_date = created_at WHERE sale_date IS NULL AND created_at IS NOT NULL")
	if res.Error != nil {
		return 0, fmt.Errorf("backfill sale dates: %w", res.Error)
	}
	return res.RowsAffected, nil
}
