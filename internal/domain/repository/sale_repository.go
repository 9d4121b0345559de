package repository

import (
	"context"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (DIP).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context) ([]*entity.Sale, error)
	Delete(ctx context.Context, id string) error
	CountByProduct(ctx context.Context, productID string) (int, error)
}
