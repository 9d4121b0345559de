package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
)

// Códigos de error del cuerpo dto.ErrorResponse.
const (
	CodeInvalidBody       = "INVALID_BODY"
	CodeValidation        = "VALIDATION"
	CodeMissingToken      = "MISSING_TOKEN"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeProductHasSales   = "PRODUCT_HAS_SALES"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternal          = "INTERNAL"
)

func errorJSON(c *fiber.Ctx, status int, code, detail string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Detail: detail})
}

// writeError traduce errores de dominio a HTTP. Los errores no reconocidos se registran y
// se responden como 500 sin exponer el detalle.
func writeError(c *fiber.Ctx, err error) error {
	var (
		stockErr *domain.InsufficientStockError
		valErr   *domain.ValidationError
	)
	switch {
	case errors.As(err, &stockErr):
		available := stockErr.Available
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:      CodeInsufficientStock,
			Detail:    stockErr.Error(),
			Available: &available,
		})
	case errors.As(err, &valErr):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, valErr.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, CodeForbidden, "acceso denegado para el rol actual")
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, "recurso no encontrado")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorJSON(c, fiber.StatusConflict, CodeEmailExists, "el email ya está registrado")
	case errors.Is(err, domain.ErrProductHasSales):
		return errorJSON(c, fiber.StatusConflict, CodeProductHasSales, "el producto tiene ventas asociadas; elimine primero las ventas")
	case errors.Is(err, domain.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, CodeConflict, err.Error())
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno del servidor")
}

func invalidBody(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
}
