package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/metrics"
	"github.com/jhoicas/smart-inventory-api/pkg/logger"
)

// RequestLogger escribe una línea estructurada por petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := resolveStatus(c, err)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("user_id", GetUserID(c)).
			Err(err).
			Msg("request")
		return nil
	}
}

// MetricsMiddleware registra conteo y duración por ruta (patrón, no URL concreta).
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		done := m.RequestStarted()
		err := c.Next()
		status := resolveStatus(c, err)
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		done(c.Method(), route, status)
		return nil
	}
}

// resolveStatus escribe la respuesta de error con el ErrorHandler de la app (404 sin ruta,
// *fiber.Error, pánicos recuperados) para que el status leído sea el que recibe el cliente.
func resolveStatus(c *fiber.Ctx, err error) int {
	if err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	return c.Response().StatusCode()
}
