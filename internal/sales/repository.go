package sales

import (
	"context"

	"github.com/vendaflow/backoffice/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for sales and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, tenantID int64, limit int) ([]models.Sale, error)
	Get(ctx context.Context, tenantID, id int64) (*models.Sale, error)
	FindProduct(ctx context.Context, tenantID, productID int64) (*models.Product, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error)
	StockLevel(ctx context.Context, productID int64) (*models.Product, error)
	CreateSale(ctx context.Context, sale *models.Sale) error
	AssignCode(ctx context.Context, saleID int64, code string) error
	CreateItems(ctx context.Context, items []models.SaleItem) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) List(ctx context.Context, tenantID int64, limit int) ([]models.Sale, error) {
	var out []models.Sale
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("COALESCE(sale_date, created_at) DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repositoryImpl) Get(ctx context.Context, tenantID, id int64) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Take(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *repositoryImpl) FindProduct(ctx context.Context, tenantID, productID int64) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND is_active = ?", productID, tenantID, true).
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DecrementStock subtracts quantity only when enough stock remains. The
// guard lives in the UPDATE so concurrent sales cannot oversell.
func (r *repositoryImpl) DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// StockLevel rereads the fields a low-stock check needs after a decrement.
func (r *repositoryImpl) StockLevel(ctx context.Context, productID int64) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Select("id", "tenant_id", "name", "stock_quantity", "min_stock").
		Where("id = ?", productID).
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) CreateSale(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Omit("Items").Create(sale).Error
}

func (r *repositoryImpl) AssignCode(ctx context.Context, saleID int64, code string) error {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("id = ?", saleID).
		UpdateColumn("sale_code", code).Error
}

func (r *repositoryImpl) CreateItems(ctx context.Context, items []models.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
