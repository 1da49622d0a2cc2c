package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item in a tenant catalog.
type Product struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TenantID      int64           `gorm:"column:tenant_id" json:"tenant_id"`
	Name          string          `gorm:"column:name;not null" json:"name"`
	Description   *string         `gorm:"column:description" json:"description"`
	Price         decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	CostPrice     decimal.Decimal `gorm:"column:cost_price;type:decimal(10,2)" json:"cost_price"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	MinStock      int             `gorm:"column:min_stock" json:"min_stock"`
	Category      *string         `gorm:"column:category" json:"category"`
	Barcode       *string         `gorm:"column:barcode" json:"barcode"`
	IsActive      bool            `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     *time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// LowStock reports whether the stock level has reached the reorder threshold.
func (p Product) LowStock() bool {
	return p.StockQuantity <= p.MinStock
}
