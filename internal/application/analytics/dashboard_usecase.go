// Package analytics agrega el ledger de ventas en el resumen del dashboard y en el reporte PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

// DashboardUseCase resumen de ventas para GET /sales/analytics.
// Recalcula en cada llamada a partir del ledger completo.
type DashboardUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{saleRepo: saleRepo, productRepo: productRepo}
}

// Summary calcula el resumen con asOf como "ahora" (su zona define los días).
func (uc *DashboardUseCase) Summary(ctx context.Context, asOf time.Time) (*dto.SalesSummaryDTO, error) {
	sales, names, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return toSummaryDTO(Summarize(sales, asOf), names), nil
}

// load lee ventas y productos en paralelo.
func (uc *DashboardUseCase) load(ctx context.Context) ([]*entity.Sale, map[string]string, error) {
	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type productsResult struct {
		products []*entity.Product
		err      error
	}

	salesCh := make(chan salesResult, 1)
	productsCh := make(chan productsResult, 1)

	go func() {
		s, err := uc.saleRepo.List(ctx)
		salesCh <- salesResult{s, err}
	}()
	go func() {
		p, err := uc.productRepo.List(ctx)
		productsCh <- productsResult{p, err}
	}()

	sr := <-salesCh
	pr := <-productsCh
	if sr.err != nil {
		return nil, nil, fmt.Errorf("analytics: ventas: %w", sr.err)
	}
	if pr.err != nil {
		return nil, nil, fmt.Errorf("analytics: productos: %w", pr.err)
	}

	names := make(map[string]string, len(pr.products))
	for _, p := range pr.products {
		names[p.ID] = p.Name
	}
	return sr.sales, names, nil
}

func toSummaryDTO(s Summary, names map[string]string) *dto.SalesSummaryDTO {
	out := &dto.SalesSummaryDTO{
		AsOf:         s.AsOf,
		Timezone:     s.AsOf.Location().String(),
		TodayRevenue: s.TodayRevenue,
		WeekRevenue:  s.WeekRevenue,
		MonthRevenue: s.MonthRevenue,
		TotalRevenue: s.TotalRevenue,
		TotalSales:   s.TotalSales,
		TotalUnits:   s.TotalUnits,
		DailyRevenue: make([]dto.DailyRevenueDTO, 0, len(s.Daily)),
	}
	if s.Top != nil {
		out.TopSellingProduct = &dto.TopProductDTO{
			ProductID:    s.Top.ProductID,
			ProductName:  names[s.Top.ProductID],
			QuantitySold: s.Top.QuantitySold,
			Revenue:      s.Top.Revenue,
		}
	}
	for _, d := range s.Daily {
		out.DailyRevenue = append(out.DailyRevenue, dto.DailyRevenueDTO{
			Date:    d.Day.Format(time.DateOnly),
			Revenue: d.Revenue,
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
