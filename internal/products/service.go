package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"github.com/vendaflow/backoffice/pkg/migrate"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 200
	defaultMinStock  = 5
)

// Service exposes catalog operations scoped to a tenant.
type Service interface {
	List(ctx context.Context, input ListInput) ([]ProductDTO, error)
	Get(ctx context.Context, tenantID, id int64) (*ProductDTO, error)
	Create(ctx context.Context, tenantID int64, req CreateProductRequest) (*ProductDTO, error)
	LowStock(ctx context.Context, tenantID int64) ([]ProductDTO, error)
}

// ListInput filters the active catalog.
type ListInput struct {
	TenantID int64
	Category string
	Query    string
	Limit    int
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "products repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]ProductDTO, error) {
	if input.TenantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit out of range")
	}

	rows, err := s.repo.List(ctx, listParams{
		TenantID: input.TenantID,
		Category: strings.TrimSpace(input.Category),
		Query:    strings.TrimSpace(input.Query),
		Limit:    limit,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, tenantID, id int64) (*ProductDTO, error) {
	p, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "get product")
	}
	return FromModel(p), nil
}

// Create stores a product. Without an explicit category the name keywords
// pick one, falling back to the generic category.
func (s *service) Create(ctx context.Context, tenantID int64, req CreateProductRequest) (*ProductDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{"name": "is required"})
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = models.DefaultCategory
		if matched, ok := migrate.CategoryFor(name); ok {
			category = matched
		}
	}
	minStock := defaultMinStock
	if req.MinStock != nil {
		minStock = *req.MinStock
	}
	cost := decimal.Zero
	if req.CostPrice != nil {
		cost = *req.CostPrice
	}
	now := s.now()

	p := &models.Product{
		TenantID:      tenantID,
		Name:          name,
		Description:   req.Description,
		Price:         req.Price.Round(2),
		CostPrice:     cost.Round(2),
		StockQuantity: req.StockQuantity,
		MinStock:      minStock,
		Category:      &category,
		Barcode:       req.Barcode,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     &now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return FromModel(p), nil
}

func (s *service) LowStock(ctx context.Context, tenantID int64) ([]ProductDTO, error) {
	rows, err := s.repo.ListLowStock(ctx, tenantID, MaxListLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list low stock products")
	}
	return FromModels(rows), nil
}
