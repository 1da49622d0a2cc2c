package sales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaflow/backoffice/internal/notifications"
	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Service defines sale listing and checkout operations.
type Service interface {
	List(ctx context.Context, tenantID int64, limit int) ([]models.Sale, error)
	Get(ctx context.Context, tenantID, id int64) (*models.Sale, error)
	Create(ctx context.Context, tenantID, userID int64, req CreateSaleRequest) (*models.Sale, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo   Repository
	alerts notifications.Repository
	tx     txRunner
	now    func() time.Time
}

// NewService wires sales dependencies. alerts receives the low-stock
// notifications raised inside the sale transaction.
func NewService(repo Repository, alerts notifications.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sales repository required")
	}
	if alerts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notification repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &service{repo: repo, alerts: alerts, tx: tx, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) List(ctx context.Context, tenantID int64, limit int) ([]models.Sale, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	rows, err := s.repo.List(ctx, tenantID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sales")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, tenantID, id int64) (*models.Sale, error) {
	sale, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "get sale")
	}
	return sale, nil
}

// Create records a sale, its items and the stock movement atomically. The
// sale code is derived from the row id, so it is assigned after the insert.
// A line that takes a product down to its minimum stock raises a warning
// notification in the same transaction.
func (s *service) Create(ctx context.Context, tenantID, userID int64, req CreateSaleRequest) (*models.Sale, error) {
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"items": "is required"})
	}
	payment := req.PaymentMethod
	if payment == "" {
		payment = models.PaymentCash
	}

	var created *models.Sale
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		alerts := s.alerts.WithTx(tx)

		items := make([]models.SaleItem, 0, len(req.Items))
		total := decimal.Zero
		totalItems := 0
		for i, line := range req.Items {
			item, err := s.priceLine(ctx, repo, tenantID, i, line)
			if err != nil {
				return err
			}
			ok, err := repo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
					WithDetails(map[string]any{"product_id": item.ProductID})
			}
			if err := s.alertLowStock(ctx, repo, alerts, item); err != nil {
				return err
			}
			items = append(items, item)
			total = total.Add(item.TotalPrice)
			totalItems += item.Quantity
		}

		now := s.now()
		sale := &models.Sale{
			TenantID:      tenantID,
			TotalAmount:   total,
			TotalItems:    totalItems,
			PaymentMethod: payment,
			Status:        models.SaleStatusCompleted,
			SaleDate:      &now,
			CreatedAt:     now,
		}
		if userID > 0 {
			sale.UserID = &userID
		}
		if err := repo.CreateSale(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create sale")
		}

		code := models.SaleCodeFor(sale.ID)
		if err := repo.AssignCode(ctx, sale.ID, code); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign sale code")
		}
		sale.SaleCode = &code

		for i := range items {
			items[i].SaleID = sale.ID
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create sale items")
		}
		sale.Items = items
		created = sale
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create sale")
	}
	return created, nil
}

// alertLowStock notifies the tenant when this decrement crossed the product's
// minimum, so repeated sales of an already low product stay quiet.
func (s *service) alertLowStock(ctx context.Context, repo Repository, alerts notifications.Repository, item models.SaleItem) error {
	product, err := repo.StockLevel(ctx, item.ProductID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload stock")
	}
	if !product.LowStock() || product.StockQuantity+item.Quantity <= product.MinStock {
		return nil
	}

	meta, err := json.Marshal(map[string]any{
		"product_id":     product.ID,
		"stock_quantity": product.StockQuantity,
		"min_stock":      product.MinStock,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode notification metadata")
	}
	metadata := string(meta)
	notification := &models.Notification{
		TenantID:  product.TenantID,
		Title:     "Estoque baixo",
		Message:   fmt.Sprintf("%s está com %d unidade(s) em estoque (mínimo %d).", product.Name, product.StockQuantity, product.MinStock),
		Type:      models.NotificationWarning,
		Priority:  models.PriorityHigh,
		Metadata:  &metadata,
		CreatedAt: s.now(),
	}
	if err := alerts.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create low stock notification")
	}
	return nil
}

func (s *service) priceLine(ctx context.Context, repo Repository, tenantID int64, idx int, line CreateSaleItemReq) (models.SaleItem, error) {
	field := func(name string) string { return fmt.Sprintf("items[%d].%s", idx, name) }

	if line.Quantity <= 0 {
		return models.SaleItem{}, validationError(field("quantity"), "must be greater than 0")
	}
	product, err := repo.FindProduct(ctx, tenantID, line.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SaleItem{}, validationError(field("product_id"), "unknown product")
		}
		return models.SaleItem{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	unit := product.Price
	if line.UnitPrice != nil {
		if line.UnitPrice.IsNegative() {
			return models.SaleItem{}, validationError(field("unit_price"), "must be greater than or equal to 0")
		}
		unit = *line.UnitPrice
	}
	item := models.SaleItem{
		ProductID: product.ID,
		Quantity:  line.Quantity,
		UnitPrice: unit.Round(2),
	}
	expected := item.ExpectedTotal()
	if line.TotalPrice != nil && !line.TotalPrice.Equal(expected) {
		return models.SaleItem{}, validationError(field("total_price"), fmt.Sprintf("must equal quantity x unit_price (%s)", expected.StringFixed(2)))
	}
	item.TotalPrice = expected
	return item, nil
}

func validationError(field, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{field: msg})
}
