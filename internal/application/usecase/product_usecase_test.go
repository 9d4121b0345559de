package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory-api/internal/application/auth"
	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/application/usecase"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/memory"
)

var (
	admin = &auth.Caller{UserID: uuid.NewString(), Identity: "admin@example.com", Role: entity.RoleAdmin}
	staff = &auth.Caller{UserID: uuid.NewString(), Identity: "staff@example.com", Role: entity.RoleStaff}
)

func newProductUC() (*memory.Store, *usecase.ProductUseCase) {
	store := memory.NewStore()
	return store, usecase.NewProductUseCase(store.Products(), store, nil, nil)
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestProductUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	_, uc := newProductUC()

	created, err := uc.Create(ctx, admin, dto.CreateProductRequest{Name: "  Widget ", Price: price("9.99"), Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, 5, created.Quantity)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	qty := 8
	updated, err := uc.Update(ctx, admin, created.ID, dto.UpdateProductRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Quantity)
	assert.Equal(t, "Widget", updated.Name, "los campos ausentes no cambian")
	assert.True(t, decimal.RequireFromString("9.99").Equal(updated.Price))

	require.NoError(t, uc.Delete(ctx, admin, created.ID))
	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_StaffNoPuedeMutar(t *testing.T) {
	ctx := context.Background()
	_, uc := newProductUC()

	_, err := uc.Create(ctx, staff, dto.CreateProductRequest{Name: "X", Price: price("1")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{Name: "X", Price: price("1"), Quantity: 1})
	require.NoError(t, err)

	name := "Y"
	_, err = uc.Update(ctx, staff, p.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, staff, p.ID), domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, nil, p.ID), domain.ErrUnauthorized)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "X", list[0].Name)
}

func TestProductUseCase_Validacion(t *testing.T) {
	ctx := context.Background()
	_, uc := newProductUC()

	cases := map[string]dto.CreateProductRequest{
		"nombre vacío":      {Name: "   ", Price: price("1")},
		"precio negativo":   {Name: "A", Price: price("-0.01")},
		"sin precio":        {Name: "A"},
		"cantidad negativa": {Name: "A", Price: price("1"), Quantity: -1},
		"cantidad enorme":   {Name: "A", Price: price("1"), Quantity: 3000000000},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, admin, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{Name: "A", Price: price("1")})
	require.NoError(t, err)
	neg := -3
	_, err = uc.Update(ctx, admin, p.ID, dto.UpdateProductRequest{Quantity: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	empty := ""
	_, err = uc.Update(ctx, admin, p.ID, dto.UpdateProductRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	huge := 3000000000
	_, err = uc.Update(ctx, admin, p.ID, dto.UpdateProductRequest{Quantity: &huge})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	_, uc := newProductUC()
	name := "Z"

	_, err := uc.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, admin, uuid.NewString(), dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, admin, uuid.NewString()), domain.ErrNotFound)
}

func TestProductUseCase_DeleteConVentas(t *testing.T) {
	ctx := context.Background()
	store, uc := newProductUC()

	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{Name: "Widget", Price: price("10"), Quantity: 5})
	require.NoError(t, err)
	require.NoError(t, store.Sales().Create(ctx, &entity.Sale{ID: uuid.NewString(), ProductID: p.ID, Quantity: 1}))

	err = uc.Delete(ctx, admin, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductHasSales)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Get(ctx, p.ID)
	assert.NoError(t, err)
}
