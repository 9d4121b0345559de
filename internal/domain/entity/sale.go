package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registra la salida de unidades de un producto a cambio de ingreso.
// Crear una venta descuenta Quantity del producto; eliminarla lo restituye.
type Sale struct {
	ID         string
	ProductID  string
	Quantity   int             // positivo
	TotalPrice decimal.Decimal // no negativo
	SaleDate   time.Time       // UTC, asignado por el servidor
	CreatedBy  string          // UserID de quien registró la venta (puede ir vacío)
}
