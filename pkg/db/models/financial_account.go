package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AccountReceivable = "receivable"
	AccountPayable    = "payable"

	AccountStatusPending = "pendente"
	AccountStatusPaid    = "pago"
	AccountStatusOverdue = "vencido"
)

type FinancialAccount struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TenantID    int64           `gorm:"column:tenant_id" json:"tenant_id"`
	Description string          `gorm:"column:description;not null" json:"description"`
	Type        string          `gorm:"column:type;not null" json:"type"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	DueDate     *time.Time      `gorm:"column:due_date" json:"due_date"`
	Status      string          `gorm:"column:status" json:"status"`
	CreatedAt   *time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (FinancialAccount) TableName() string { return "financial_accounts" }
