package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest entrada para registrar una venta.
// Si TotalPrice es nil se calcula como precio unitario × cantidad.
type RecordSaleRequest struct {
	ProductID  string           `json:"product_id" validate:"required"`
	Quantity   int              `json:"quantity" validate:"gt=0,lte=2147483647"`
	TotalPrice *decimal.Decimal `json:"total_price"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	SaleDate   time.Time       `json:"sale_date"`
	CreatedBy  string          `json:"created_by,omitempty"`
}
