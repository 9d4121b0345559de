package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smart-inventory-api/internal/application/analytics"
)

// AnalyticsHandler resumen de ventas y reporte PDF.
type AnalyticsHandler struct {
	dashboard *analytics.DashboardUseCase
	report    *analytics.ReportUseCase
	now       func() time.Time
}

// NewAnalyticsHandler construye el handler. report puede ser nil (sin /sales/report).
func NewAnalyticsHandler(dashboard *analytics.DashboardUseCase, report *analytics.ReportUseCase, now func() time.Time) *AnalyticsHandler {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsHandler{dashboard: dashboard, report: report, now: now}
}

// Summary godoc
// @Summary      Resumen de ventas
// @Description  Ingresos de hoy, últimos 7 días, mes y total; producto más vendido y serie diaria.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        tz   query  string  false  "Zona horaria IANA (ej. America/Bogota); por defecto la del servidor"
// @Success      200  {object}  dto.SalesSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /sales/analytics [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	asOf, err := h.asOf(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	}
	out, err := h.dashboard.Summary(c.UserContext(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de ventas en PDF
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        tz   query  string  false  "Zona horaria IANA"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /sales/report [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	asOf, err := h.asOf(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, err.Error())
	}
	pdf, err := h.report.SalesReportPDF(c.UserContext(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("ventas-%s.pdf", asOf.Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// asOf "ahora" en la zona pedida por el cliente.
func (h *AnalyticsHandler) asOf(c *fiber.Ctx) (time.Time, error) {
	now := h.now()
	tz := strings.TrimSpace(c.Query("tz"))
	if tz == "" {
		return now, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("tz: zona horaria desconocida %q", tz)
	}
	return now.In(loc), nil
}
