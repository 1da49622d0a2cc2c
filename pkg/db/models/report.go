package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Report struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TenantID   int64     `gorm:"column:tenant_id" json:"tenant_id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Type       string    `gorm:"column:type;not null" json:"type"`
	Parameters *string   `gorm:"column:parameters" json:"parameters"`
	CreatedBy  *int64    `gorm:"column:created_by" json:"created_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Report) TableName() string { return "reports" }

// DailySales is one row of the daily_sales_summary view.
type DailySales struct {
	Day         string          `gorm:"column:day" json:"day"`
	TenantID    int64           `gorm:"column:tenant_id" json:"tenant_id"`
	SalesCount  int64           `gorm:"column:sales_count" json:"sales_count"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount" json:"total_amount"`
	TotalItems  int64           `gorm:"column:total_items" json:"total_items"`
}
