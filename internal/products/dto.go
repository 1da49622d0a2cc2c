package product

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendaflow/backoffice/pkg/db/models"
)

// ProductDTO is the catalog payload returned to clients.
type ProductDTO struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	LowStock      bool            `json:"low_stock"`
	Category      string          `json:"category"`
	Barcode       *string         `json:"barcode,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	category := models.DefaultCategory
	if p.Category != nil && *p.Category != "" {
		category = *p.Category
	}
	return &ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		CostPrice:     p.CostPrice,
		StockQuantity: p.StockQuantity,
		MinStock:      p.MinStock,
		LowStock:      p.LowStock(),
		Category:      category,
		Barcode:       p.Barcode,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromModels(list []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

// CreateProductRequest is the validated body of POST /api/produtos.
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price         decimal.Decimal  `json:"price" validate:"gte=0"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty"`
	StockQuantity int              `json:"stock_quantity" validate:"gte=0"`
	MinStock      *int             `json:"min_stock,omitempty" validate:"omitempty,gte=0"`
	Category      string           `json:"category,omitempty" validate:"max=100"`
	Barcode       *string          `json:"barcode,omitempty" validate:"omitempty,max=50"`
}
