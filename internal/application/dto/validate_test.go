package dto_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
)

func TestValidate_Register(t *testing.T) {
	ok := dto.RegisterRequest{Email: "ana@example.com", Password: "secreto", Role: "staff"}
	require.NoError(t, dto.Validate(ok))

	cases := map[string]struct {
		in    dto.RegisterRequest
		field string
	}{
		"email malformado":   {dto.RegisterRequest{Email: "ana", Password: "secreto"}, "email"},
		"password corto":     {dto.RegisterRequest{Email: "ana@example.com", Password: "123"}, "password"},
		"rol desconocido":    {dto.RegisterRequest{Email: "ana@example.com", Password: "secreto", Role: "root"}, "role"},
		"username muy corto": {dto.RegisterRequest{Email: "ana@example.com", Password: "secreto", Username: "ab"}, "username"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := dto.Validate(tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidate_RecordSale(t *testing.T) {
	err := dto.Validate(dto.RecordSaleRequest{ProductID: "p1", Quantity: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")

	assert.NoError(t, dto.Validate(dto.RecordSaleRequest{ProductID: "p1", Quantity: 1}))

	err = dto.Validate(dto.RecordSaleRequest{ProductID: "p1", Quantity: 3000000000})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "menor o igual a 2147483647")
}
