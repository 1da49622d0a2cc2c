package reports

import (
	"context"
	"time"

	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"gorm.io/gorm"
)

const (
	DefaultDays = 30
	MaxDays     = 365

	dailySalesView = "daily_sales_summary"
	dayLayout      = "2006-01-02"
)

// Service reads the reporting views maintained by versioned migrations.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// DailySales returns per-day totals for the last days days, today included,
// newest first. Canceled sales are excluded by the view.
func (s *Service) DailySales(ctx context.Context, tenantID int64, days int) ([]models.DailySales, error) {
	if days == 0 {
		days = DefaultDays
	}
	if days < 1 || days > MaxDays {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "days out of range").
			WithDetails(map[string]string{"days": "must be between 1 and 365"})
	}

	since := s.now().AddDate(0, 0, -(days - 1)).Format(dayLayout)
	rows := []models.DailySales{}
	err := s.db.WithContext(ctx).
		Table(dailySalesView).
		Where("tenant_id = ? AND day >= ?", tenantID, since).
		Order("day DESC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read daily sales")
	}
	return rows, nil
}
