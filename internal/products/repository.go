package product

import (
	"context"
	"strings"

	"github.com/vendaflow/backoffice/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines the catalog reads and writes used by the service.
type Repository interface {
	List(ctx context.Context, params listParams) ([]models.Product, error)
	Get(ctx context.Context, tenantID, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	ListLowStock(ctx context.Context, tenantID int64, limit int) ([]models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a products repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type listParams struct {
	TenantID int64
	Category string
	Query    string
	Limit    int
}

func (r *repository) List(ctx context.Context, params listParams) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", params.TenantID, true)
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Query != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(params.Query)) + "%"
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR barcode = ?)`, like, params.Query)
	}

	var out []models.Product
	if err := query.Order("name, id").Limit(params.Limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, tenantID, id int64) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repository) ListLowStock(ctx context.Context, tenantID int64, limit int) ([]models.Product, error) {
	var out []models.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ? AND stock_quantity <= min_stock", tenantID, true).
		Order("stock_quantity, name").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
