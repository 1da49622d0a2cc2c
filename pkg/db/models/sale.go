package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	SaleStatusCompleted = "concluida"
	SaleStatusCanceled  = "cancelada"

	PaymentCash   = "dinheiro"
	PaymentCard   = "cartao"
	PaymentPix    = "pix"
	PaymentCredit = "credito"
)

type Sale struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TenantID      int64           `gorm:"column:tenant_id" json:"tenant_id"`
	UserID        *int64          `gorm:"column:user_id" json:"user_id"`
	SaleCode      *string         `gorm:"column:sale_code" json:"sale_code"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	TotalItems    int             `gorm:"column:total_items" json:"total_items"`
	PaymentMethod string          `gorm:"column:payment_method" json:"payment_method"`
	Status        string          `gorm:"column:status" json:"status"`
	SaleDate      *time.Time      `gorm:"column:sale_date" json:"sale_date"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

func (Sale) TableName() string { return "sales" }

// SaleCodeFor renders the public sale code derived from the row id.
func SaleCodeFor(id int64) string {
	return fmt.Sprintf("V%04d", id)
}

type SaleItem struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SaleID     int64           `gorm:"column:sale_id;not null" json:"sale_id"`
	ProductID  int64           `gorm:"column:product_id;not null" json:"product_id"`
	Quantity   int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null" json:"total_price"`
}

func (SaleItem) TableName() string { return "sale_items" }

// ExpectedTotal is quantity times unit price, the only accepted stored total.
func (i SaleItem) ExpectedTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
