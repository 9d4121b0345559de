// Package memory implementa los puertos de persistencia en memoria (STORAGE_DRIVER=memory).
// Útil en desarrollo local y como doble de prueba; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/smart-inventory-api/internal/application/ports"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type record[T any] struct {
	seq int64 // orden de inserción
	val T
}

type state struct {
	seq      int64
	users    map[string]record[entity.User]
	products map[string]record[entity.Product]
	sales    map[string]record[entity.Sale]
}

func newState() *state {
	return &state{
		users:    make(map[string]record[entity.User]),
		products: make(map[string]record[entity.Product]),
		sales:    make(map[string]record[entity.Sale]),
	}
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

func (s *state) clone() *state {
	c := &state{
		seq:      s.seq,
		users:    make(map[string]record[entity.User], len(s.users)),
		products: make(map[string]record[entity.Product], len(s.products)),
		sales:    make(map[string]record[entity.Sale], len(s.sales)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	return c
}

// Store contiene el estado compartido. Todas las transacciones se serializan con mu.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Users devuelve el repositorio de usuarios (fuera de transacción).
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// Products devuelve el repositorio de productos (fuera de transacción).
func (s *Store) Products() *ProductRepo { return &ProductRepo{store: s} }

// Sales devuelve el repositorio de ventas (fuera de transacción).
func (s *Store) Sales() *SaleRepo { return &SaleRepo{store: s} }

// Run ejecuta fn sobre una copia del estado con el lock tomado; la copia
// reemplaza al estado solo si fn termina sin error.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	if err := fn(&ProductRepo{store: s, tx: tx}, &SaleRepo{store: s, tx: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// with ejecuta fn sobre el estado de la transacción o, fuera de ella, con el lock tomado.
func (s *Store) with(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}
