package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
)

func TestMoney_RedondeaSoloAlMostrar(t *testing.T) {
	g := NewMarotoPDFGenerator("en")
	assert.Equal(t, "$1,234,567.50", g.money(decimal.RequireFromString("1234567.499")))
	assert.Equal(t, "$0.01", g.money(decimal.RequireFromString("0.005")))
}

func TestNewMarotoPDFGenerator_IdiomaInvalido(t *testing.T) {
	g := NewMarotoPDFGenerator("%%")
	require.NotNil(t, g.printer)
}

func TestGenerateSalesReport(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	report := dto.SalesReportDTO{
		Title:       "Smart Inventory - Reporte de ventas",
		PeriodLabel: "Marzo 2024",
		GeneratedAt: at,
		Summary: dto.SalesSummaryDTO{
			AsOf:         at,
			Timezone:     "UTC",
			TodayRevenue: decimal.NewFromInt(30),
			WeekRevenue:  decimal.NewFromInt(30),
			MonthRevenue: decimal.NewFromInt(30),
			TotalRevenue: decimal.NewFromInt(30),
			TotalSales:   1,
			TotalUnits:   3,
			TopSellingProduct: &dto.TopProductDTO{
				ProductID: "p1", ProductName: "Widget", QuantitySold: 3, Revenue: decimal.NewFromInt(30),
			},
			DailyRevenue: []dto.DailyRevenueDTO{
				{Date: "2024-03-09", Revenue: decimal.Zero},
				{Date: "2024-03-10", Revenue: decimal.Zero},
				{Date: "2024-03-11", Revenue: decimal.Zero},
				{Date: "2024-03-12", Revenue: decimal.Zero},
				{Date: "2024-03-13", Revenue: decimal.Zero},
				{Date: "2024-03-14", Revenue: decimal.Zero},
				{Date: "2024-03-15", Revenue: decimal.NewFromInt(30)},
			},
		},
		Rows: []dto.SalesReportRow{
			{SaleID: "s1", SaleDate: at, ProductName: "Widget", Quantity: 3, TotalPrice: decimal.NewFromInt(30)},
		},
	}

	out, err := NewMarotoPDFGenerator("es-CO").GenerateSalesReport(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := NewMarotoPDFGenerator("es").GenerateSalesReport(dto.SalesReportDTO{Title: "Vacío"})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
