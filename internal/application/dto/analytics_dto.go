package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryDTO respuesta de GET /sales/analytics.
// Los montos no se redondean; el cliente redondea a 2 decimales al mostrar.
type SalesSummaryDTO struct {
	AsOf     time.Time `json:"as_of"`
	Timezone string    `json:"timezone"`

	TodayRevenue decimal.Decimal `json:"today_revenue"`
	WeekRevenue  decimal.Decimal `json:"week_revenue"` // ventana móvil de 7 días incluyendo hoy
	MonthRevenue decimal.Decimal `json:"month_revenue"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalSales   int             `json:"total_sales"`
	TotalUnits   int             `json:"total_units"`

	TopSellingProduct *TopProductDTO    `json:"top_selling_product"`
	DailyRevenue      []DailyRevenueDTO `json:"daily_revenue"` // 7 puntos, del más antiguo a hoy
}

// TopProductDTO producto más vendido por unidades.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DailyRevenueDTO un punto de la serie diaria.
type DailyRevenueDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD en la zona del llamador
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesReportDTO datos del reporte PDF de ventas.
type SalesReportDTO struct {
	Title       string
	PeriodLabel string // ej. "Marzo 2024"
	GeneratedAt time.Time
	Summary     SalesSummaryDTO
	Rows        []SalesReportRow
}

// SalesReportRow una venta en el detalle del reporte.
type SalesReportRow struct {
	SaleID      string
	SaleDate    time.Time
	ProductName string
	Quantity    int
	TotalPrice  decimal.Decimal
}
