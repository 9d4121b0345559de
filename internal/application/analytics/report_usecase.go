package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/application/ports"
)

// ReportUseCase genera el reporte PDF de ventas (solo admin, ver auth.PermReportsRead).
type ReportUseCase struct {
	dashboard *DashboardUseCase
	generator ports.ReportGenerator
	appName   string
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(dashboard *DashboardUseCase, generator ports.ReportGenerator, appName string) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, generator: generator, appName: appName}
}

// SalesReportPDF arma el resumen y el detalle de ventas y los entrega al generador.
func (uc *ReportUseCase) SalesReportPDF(ctx context.Context, asOf time.Time) ([]byte, error) {
	sales, names, err := uc.dashboard.load(ctx)
	if err != nil {
		return nil, err
	}
	summary := toSummaryDTO(Summarize(sales, asOf), names)

	rows := make([]dto.SalesReportRow, 0, len(sales))
	for _, s := range sales {
		name := names[s.ProductID]
		if name == "" {
			name = s.ProductID
		}
		rows = append(rows, dto.SalesReportRow{
			SaleID:      s.ID,
			SaleDate:    s.SaleDate.In(asOf.Location()),
			ProductName: name,
			Quantity:    s.Quantity,
			TotalPrice:  s.TotalPrice,
		})
	}

	report := dto.SalesReportDTO{
		Title:       fmt.Sprintf("%s - Reporte de ventas", uc.appName),
		PeriodLabel: monthLabel(asOf),
		GeneratedAt: asOf,
		Summary:     *summary,
		Rows:        rows,
	}
	pdf, err := uc.generator.GenerateSalesReport(report)
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return pdf, nil
}
