package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/application/auth"
	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/application/ports"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
	"github.com/jhoicas/smart-inventory-api/pkg/logger"
)

// ProductUseCase catálogo de productos. Lectura pública; las mutaciones exigen rol admin.
type ProductUseCase struct {
	repo   repository.ProductRepository
	tx     ports.TxRunner
	events ports.EventPublisher
	log    *logger.Logger
}

// NewProductUseCase construye el caso de uso. events y log pueden ser nil.
func NewProductUseCase(repo repository.ProductRepository, tx ports.TxRunner, events ports.EventPublisher, log *logger.Logger) *ProductUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, tx: tx, events: events, log: log.Component("products")}
}

// List devuelve todos los productos en orden de creación.
func (uc *ProductUseCase) List(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Get obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Create crea un producto.
func (uc *ProductUseCase) Create(ctx context.Context, caller *auth.Caller, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := auth.Authorize(caller, entity.RoleAdmin); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, domain.Invalid("price", "no puede ser negativo")
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Quantity:    in.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.TopicProductCreated, p, caller)
	return toProductResponse(p), nil
}

// Update aplica los campos presentes (PUT y PATCH son parciales). Bloquea la fila para no pisar
// un descuento de existencias concurrente.
func (uc *ProductUseCase) Update(ctx context.Context, caller *auth.Caller, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := auth.Authorize(caller, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateUpdate(&in); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, domain.ErrNotFound
	}

	var updated *entity.Product
	err := uc.tx.Run(ctx, func(productRepo repository.ProductRepository, _ repository.SaleRepository) error {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if in.Quantity != nil {
			p.Quantity = *in.Quantity
		}
		p.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, ports.TopicProductUpdated, updated, caller)
	return toProductResponse(updated), nil
}

// Delete elimina un producto sin ventas. ErrProductHasSales si alguna venta lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, caller *auth.Caller, id string) error {
	if err := auth.Authorize(caller, entity.RoleAdmin); err != nil {
		return err
	}
	if !validID(id) {
		return domain.ErrNotFound
	}
	var deleted *entity.Product
	err := uc.tx.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		n, err := saleRepo.CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrProductHasSales
		}
		deleted = p
		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.publish(ctx, ports.TopicProductDeleted, deleted, caller)
	return nil
}

func (uc *ProductUseCase) publish(ctx context.Context, topic string, p *entity.Product, caller *auth.Caller) {
	ev := ports.ProductEvent{ProductID: p.ID, Name: p.Name, Quantity: p.Quantity}
	if caller != nil {
		ev.ActorID = caller.UserID
	}
	if err := uc.events.Publish(ctx, topic, p.ID, ev); err != nil {
		uc.log.Warn().Err(err).Str("topic", topic).Str("product_id", p.ID).Msg("no se pudo publicar el evento")
	}
}

func validateUpdate(in *dto.UpdateProductRequest) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.Invalid("name", "es requerido")
		}
		if len(name) > 200 {
			return domain.Invalid("name", "debe tener como máximo 200 caracteres")
		}
		in.Name = &name
	}
	if in.Description != nil && len(*in.Description) > 2000 {
		return domain.Invalid("description", "debe tener como máximo 2000 caracteres")
	}
	if in.Price != nil && in.Price.LessThan(decimal.Zero) {
		return domain.Invalid("price", "no puede ser negativo")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return domain.Invalid("quantity", "debe ser mayor o igual a 0")
	}
	if in.Quantity != nil && *in.Quantity > entity.MaxQuantity {
		return domain.Invalid("quantity", fmt.Sprintf("debe ser menor o igual a %d", entity.MaxQuantity))
	}
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
