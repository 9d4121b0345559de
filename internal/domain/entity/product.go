package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity tope de unidades por producto o venta (columna INTEGER).
const MaxQuantity = 1<<31 - 1

// Product representa un artículo del catálogo con su existencia disponible.
// Invariante: Quantity >= 0 en todo momento.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio unitario, no negativo
	Quantity    int             // unidades en existencia
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanFulfil indica si hay existencias para vender qty unidades.
func (p *Product) CanFulfil(qty int) bool {
	return qty <= p.Quantity
}
