package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// WindowDays tamaño de la ventana móvil semanal y de la serie diaria.
const WindowDays = 7

// TopProduct producto con más unidades vendidas.
type TopProduct struct {
	ProductID    string
	QuantitySold int
	Revenue      decimal.Decimal
}

// DailyRevenue ingreso de un día calendario (medianoche en la zona de asOf).
type DailyRevenue struct {
	Day     time.Time
	Revenue decimal.Decimal
}

// Summary agregados de ventas. Los montos no se redondean.
type Summary struct {
	AsOf         time.Time
	TodayRevenue decimal.Decimal
	WeekRevenue  decimal.Decimal
	MonthRevenue decimal.Decimal
	TotalRevenue decimal.Decimal
	TotalSales   int
	TotalUnits   int
	Top          *TopProduct // nil sin ventas
	Daily        []DailyRevenue
}

// Summarize calcula los agregados sobre sales tomando asOf como "ahora". Es una función pura:
// los días se evalúan en asOf.Location() y las ventanas son semiabiertas [inicio, fin).
//
//	hoy:    [inicio del día, +1d)
//	semana: [inicio del día - 6d, +1d)
//	mes:    [día 1 del mes, +1d)
func Summarize(sales []*entity.Sale, asOf time.Time) Summary {
	loc := asOf.Location()
	todayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, loc)
	end := todayStart.AddDate(0, 0, 1)
	weekStart := todayStart.AddDate(0, 0, -(WindowDays - 1))
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, loc)

	s := Summary{
		AsOf:         asOf,
		TodayRevenue: decimal.Zero,
		WeekRevenue:  decimal.Zero,
		MonthRevenue: decimal.Zero,
		TotalRevenue: decimal.Zero,
		Daily:        make([]DailyRevenue, WindowDays),
	}
	for i := range s.Daily {
		s.Daily[i] = DailyRevenue{Day: weekStart.AddDate(0, 0, i), Revenue: decimal.Zero}
	}

	byProduct := make(map[string]*TopProduct)
	for _, sale := range sales {
		if sale == nil {
			continue
		}
		at := sale.SaleDate.In(loc)
		s.TotalRevenue = s.TotalRevenue.Add(sale.TotalPrice)
		s.TotalSales++
		s.TotalUnits += sale.Quantity

		if inWindow(at, todayStart, end) {
			s.TodayRevenue = s.TodayRevenue.Add(sale.TotalPrice)
		}
		if inWindow(at, monthStart, end) {
			s.MonthRevenue = s.MonthRevenue.Add(sale.TotalPrice)
		}
		if inWindow(at, weekStart, end) {
			s.WeekRevenue = s.WeekRevenue.Add(sale.TotalPrice)
			for i := len(s.Daily) - 1; i >= 0; i-- {
				if !at.Before(s.Daily[i].Day) {
					s.Daily[i].Revenue = s.Daily[i].Revenue.Add(sale.TotalPrice)
					break
				}
			}
		}

		tp, ok := byProduct[sale.ProductID]
		if !ok {
			tp = &TopProduct{ProductID: sale.ProductID, Revenue: decimal.Zero}
			byProduct[sale.ProductID] = tp
		}
		tp.QuantitySold += sale.Quantity
		tp.Revenue = tp.Revenue.Add(sale.TotalPrice)
	}

	for _, tp := range byProduct {
		if s.Top == nil || better(tp, s.Top) {
			s.Top = tp
		}
	}
	if s.Top != nil {
		top := *s.Top
		s.Top = &top
	}
	return s
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// better: más unidades; empate por mayor ingreso y luego menor ID.
func better(a, b *TopProduct) bool {
	if a.QuantitySold != b.QuantitySold {
		return a.QuantitySold > b.QuantitySold
	}
	if c := a.Revenue.Cmp(b.Revenue); c != 0 {
		return c > 0
	}
	return strings.Compare(a.ProductID, b.ProductID) < 0
}
