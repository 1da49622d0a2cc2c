package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"gorm.io/gorm"
)

const recentSalesLimit = 5

// Summary is the payload of GET /api/dashboard.
type Summary struct {
	ProductCount        int64           `json:"product_count"`
	LowStockCount       int64           `json:"low_stock_count"`
	TodaySalesCount     int64           `json:"today_sales_count"`
	TodayRevenue        decimal.Decimal `json:"today_revenue"`
	UnreadNotifications int64           `json:"unread_notifications"`
	RecentSales         []models.Sale   `json:"recent_sales"`
}

// Service computes tenant dashboards, one query per figure.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Summary(ctx context.Context, tenantID, userID int64) (*Summary, error) {
	conn := s.db.WithContext(ctx)
	out := &Summary{RecentSales: []models.Sale{}}

	activeProducts := conn.Model(&models.Product{}).Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if err := activeProducts.Count(&out.ProductCount).Error; err != nil {
		return nil, wrap(err, "count products")
	}
	err := conn.Model(&models.Product{}).
		Where("tenant_id = ? AND is_active = ? AND stock_quantity <= min_stock", tenantID, true).
		Count(&out.LowStockCount).Error
	if err != nil {
		return nil, wrap(err, "count low stock")
	}

	start := startOfDay(s.now())
	today := conn.Model(&models.Sale{}).
		Where("tenant_id = ? AND status <> ?", tenantID, models.SaleStatusCanceled).
		Where("COALESCE(sale_date, created_at) >= ? AND COALESCE(sale_date, created_at) < ?", start, start.Add(24*time.Hour))
	var figures struct {
		Count   int64
		Revenue decimal.NullDecimal
	}
	if err := today.Select("COUNT(*) AS count, SUM(total_amount) AS revenue").Scan(&figures).Error; err != nil {
		return nil, wrap(err, "today sales")
	}
	out.TodaySalesCount = figures.Count
	out.TodayRevenue = decimal.Zero
	if figures.Revenue.Valid {
		out.TodayRevenue = figures.Revenue.Decimal
	}

	err = conn.Model(&models.Notification{}).
		Where("tenant_id = ? AND is_read = ?", tenantID, false).
		Where("(user_id IS NULL OR user_id = ?)", userID).
		Count(&out.UnreadNotifications).Error
	if err != nil {
		return nil, wrap(err, "count notifications")
	}

	err = conn.Where("tenant_id = ?", tenantID).
		Order("COALESCE(sale_date, created_at) DESC, id DESC").
		Limit(recentSalesLimit).
		Find(&out.RecentSales).Error
	if err != nil {
		return nil, wrap(err, "recent sales")
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func wrap(err error, msg string) error {
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
