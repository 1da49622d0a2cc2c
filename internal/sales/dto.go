package sales

import "github.com/shopspring/decimal"

// CreateSaleRequest is the body of POST /api/vendas.
type CreateSaleRequest struct {
	PaymentMethod string              `json:"payment_method,omitempty" validate:"omitempty,oneof=dinheiro cartao pix credito"`
	Items         []CreateSaleItemReq `json:"items" validate:"required,min=1,max=100,dive"`
}

// CreateSaleItemReq describes one line. UnitPrice defaults to the catalog
// price; TotalPrice, when sent, must equal quantity times unit price.
type CreateSaleItemReq struct {
	ProductID  int64            `json:"product_id" validate:"gt=0"`
	Quantity   int              `json:"quantity" validate:"gt=0,lte=10000"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice *decimal.Decimal `json:"total_price,omitempty"`
}
