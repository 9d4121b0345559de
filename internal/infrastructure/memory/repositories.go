package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.SaleRepository    = (*SaleRepo)(nil)
)

func sorted[T any](m map[string]record[T]) []T {
	recs := make([]record[T], 0, len(m))
	for _, r := range m {
		recs = append(recs, r)
	}
	slices.SortFunc(recs, func(a, b record[T]) int { return cmp.Compare(a.seq, b.seq) })
	out := make([]T, len(recs))
	for i, r := range recs {
		out[i] = r.val
	}
	return out
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo Credential Store en memoria.
type UserRepo struct {
	store *Store
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.store.with(nil, func(st *state) error {
		for _, u := range st.users {
			if u.val.Email == user.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[user.ID] = record[entity.User]{seq: st.next(), val: *user}
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.store.with(nil, func(st *state) error {
		if u, ok := st.users[id]; ok {
			v := u.val
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.store.with(nil, func(st *state) error {
		for _, u := range st.users {
			if u.val.Email == email {
				v := u.val
				out = &v
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ── Products ──────────────────────────────────────────────────────────────────

// ProductRepo productos en memoria. Dentro de Run opera sobre la copia tx.
type ProductRepo struct {
	store *Store
	tx    *state
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.store.with(r.tx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrConflict
		}
		st.products[p.ID] = record[entity.Product]{seq: st.next(), val: *p}
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.with(r.tx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			v := p.val
			out = &v
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: la transacción ya tiene el lock global.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.store.with(r.tx, func(st *state) error {
		for _, p := range sorted(st.products) {
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.store.with(r.tx, func(st *state) error {
		rec, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		rec.val.Name = p.Name
		rec.val.Description = p.Description
		rec.val.Price = p.Price
		rec.val.Quantity = p.Quantity
		rec.val.UpdatedAt = p.UpdatedAt
		st.products[p.ID] = rec
		return nil
	})
}

func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	return r.store.with(r.tx, func(st *state) error {
		rec, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 {
			return domain.Invalid("quantity", "no puede ser negativa")
		}
		if quantity > entity.MaxQuantity {
			return domain.Invalid("quantity", "fuera de rango")
		}
		rec.val.Quantity = quantity
		rec.val.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		st.products[id] = rec
		return nil
	})
}

// Delete respeta la referencia desde ventas igual que la FK de PostgreSQL.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.store.with(r.tx, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, s := range st.sales {
			if s.val.ProductID == id {
				return domain.ErrProductHasSales
			}
		}
		delete(st.products, id)
		return nil
	})
}

// ── Sales ─────────────────────────────────────────────────────────────────────

// SaleRepo ventas en memoria.
type SaleRepo struct {
	store *Store
	tx    *state
}

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.store.with(r.tx, func(st *state) error {
		if _, ok := st.products[s.ProductID]; !ok {
			return domain.ErrNotFound
		}
		st.sales[s.ID] = record[entity.Sale]{seq: st.next(), val: *s}
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.store.with(r.tx, func(st *state) error {
		if s, ok := st.sales[id]; ok {
			v := s.val
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.store.with(r.tx, func(st *state) error {
		for _, s := range sorted(st.sales) {
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	return r.store.with(r.tx, func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.sales, id)
		return nil
	})
}

func (r *SaleRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	n := 0
	err := r.store.with(r.tx, func(st *state) error {
		for _, s := range st.sales {
			if s.val.ProductID == productID {
				n++
			}
		}
		return nil
	})
	return n, err
}
