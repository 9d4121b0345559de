// Package sales implementa el ledger de ventas: cada venta descuenta existencias del
// producto y eliminarla las restituye, ambas operaciones en una sola transacción.
package sales

import (
	"context"
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

// Recorder recibe las ventas confirmadas (métricas).
type Recorder interface {
	SaleRecorded(quantity int, total decimal.Decimal)
	SaleDeleted(quantity int)
}

// LedgerUseCase registro y anulación de ventas.
type LedgerUseCase struct {
	tx       ports.TxRunner
	saleRepo repository.SaleRepository
	events   ports.EventPublisher
	recorder Recorder
	log      *logger.Logger
	now      func() time.Time
}

// Option configura opcionales del ledger.
type Option func(*LedgerUseCase)

// WithEvents publica sale.* y stock.updated después del commit.
func WithEvents(p ports.EventPublisher) Option {
	return func(uc *LedgerUseCase) { uc.events = p }
}

// WithRecorder registra métricas de ventas.
func WithRecorder(r Recorder) Option {
	return func(uc *LedgerUseCase) { uc.recorder = r }
}

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option {
	return func(uc *LedgerUseCase) { uc.log = l.Component("sales") }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// NewLedgerUseCase construye el ledger. saleRepo se usa para lecturas fuera de transacción.
func NewLedgerUseCase(tx ports.TxRunner, saleRepo repository.SaleRepository, opts ...Option) *LedgerUseCase {
	uc := &LedgerUseCase{
		tx:       tx,
		saleRepo: saleRepo,
		events:   ports.NopPublisher{},
		recorder: nopRecorder{},
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Record registra una venta. Dentro de la transacción bloquea el producto (SELECT FOR UPDATE),
// verifica existencias, descuenta y persiste la venta; cualquier fallo deja todo intacto.
// Devuelve *domain.InsufficientStockError si la cantidad supera la existencia.
func (uc *LedgerUseCase) Record(ctx context.Context, caller *auth.Caller, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.TotalPrice != nil && in.TotalPrice.IsNegative() {
		return nil, domain.Invalid("total_price", "no puede ser negativo")
	}
	if !validID(in.ProductID) {
		return nil, domain.ErrNotFound
	}

	var (
		sale      *entity.Sale
		remaining int
	)
	err := uc.tx.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		p, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if !p.CanFulfil(in.Quantity) {
			return &domain.InsufficientStockError{ProductID: p.ID, Available: p.Quantity, Requested: in.Quantity}
		}

		total := p.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		if in.TotalPrice != nil {
			total = *in.TotalPrice
		}
		remaining = p.Quantity - in.Quantity
		if err := productRepo.UpdateQuantity(ctx, p.ID, remaining); err != nil {
			return err
		}
		sale = &entity.Sale{
			ID:         uuid.New().String(),
			ProductID:  p.ID,
			Quantity:   in.Quantity,
			TotalPrice: total,
			SaleDate:   uc.now().UTC().Truncate(time.Microsecond),
			CreatedBy:  caller.UserID,
		}
		return saleRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.SaleRecorded(sale.Quantity, sale.TotalPrice)
	uc.publish(ctx, ports.TopicSaleRecorded, sale, caller)
	uc.publishStock(ctx, sale.ProductID, remaining, -sale.Quantity)
	return toSaleResponse(sale), nil
}

// Delete anula una venta y restituye su cantidad al producto en la misma transacción.
func (uc *LedgerUseCase) Delete(ctx context.Context, caller *auth.Caller, id string) error {
	if caller == nil {
		return domain.ErrUnauthorized
	}
	if !validID(id) {
		return domain.ErrNotFound
	}

	var (
		sale     *entity.Sale
		restored int
	)
	err := uc.tx.Run(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		s, err := saleRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		p, err := productRepo.GetForUpdate(ctx, s.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			// La FK impide borrar productos con ventas; no debería ocurrir.
			return domain.ErrNotFound
		}
		restored = p.Quantity + s.Quantity
		if restored > entity.MaxQuantity {
			return domain.Invalid("quantity", "la existencia restituida excede el máximo")
		}
		if err := productRepo.UpdateQuantity(ctx, p.ID, restored); err != nil {
			return err
		}
		sale = s
		return saleRepo.Delete(ctx, s.ID)
	})
	if err != nil {
		return err
	}

	uc.recorder.SaleDeleted(sale.Quantity)
	uc.publish(ctx, ports.TopicSaleDeleted, sale, caller)
	uc.publishStock(ctx, sale.ProductID, restored, sale.Quantity)
	return nil
}

// List devuelve todas las ventas en orden de registro.
func (uc *LedgerUseCase) List(ctx context.Context) ([]*dto.SaleResponse, error) {
	list, err := uc.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// Get obtiene una venta. ErrNotFound si no existe.
func (uc *LedgerUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(s), nil
}

func (uc *LedgerUseCase) publish(ctx context.Context, topic string, s *entity.Sale, caller *auth.Caller) {
	ev := ports.SaleEvent{
		SaleID:     s.ID,
		ProductID:  s.ProductID,
		Quantity:   s.Quantity,
		TotalPrice: s.TotalPrice.String(),
		ActorID:    caller.UserID,
	}
	if err := uc.events.Publish(ctx, topic, s.ProductID, ev); err != nil {
		uc.log.Warn().Err(err).Str("topic", topic).Str("sale_id", s.ID).Msg("no se pudo publicar el evento")
	}
}

func (uc *LedgerUseCase) publishStock(ctx context.Context, productID string, quantity, delta int) {
	ev := ports.StockEvent{ProductID: productID, Quantity: quantity, Delta: delta}
	if err := uc.events.Publish(ctx, ports.TopicStockUpdated, productID, ev); err != nil {
		uc.log.Warn().Err(err).Str("product_id", productID).Msg("no se pudo publicar stock.updated")
	}
}

type nopRecorder struct{}

func (nopRecorder) SaleRecorded(int, decimal.Decimal) {}
func (nopRecorder) SaleDeleted(int)                   {}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		Quantity:   s.Quantity,
		TotalPrice: s.TotalPrice,
		SaleDate:   s.SaleDate,
		CreatedBy:  s.CreatedBy,
	}
}
