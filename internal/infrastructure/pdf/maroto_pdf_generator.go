// Package pdf genera el reporte de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + periodo     │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Hoy | Semana | Mes | Total | Más vendido          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SERIE: ingreso diario de los últimos 7 días                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Cant | Total                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/application/ports"
)

var _ ports.ReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se formatean según lang (ej. "es-CO").
func NewMarotoPDFGenerator(lang string) *MarotoPDFGenerator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Spanish
	}
	return &MarotoPDFGenerator{printer: message.NewPrinter(tag)}
}

// GenerateSalesReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSalesReport(r dto.SalesReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRows(r.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.dailyRows(r.Summary.DailyRevenue)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	if len(r.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas registradas", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	for _, sr := range r.Rows {
		m.AddRows(g.saleRow(sr))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r dto.SalesReportDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(r.PeriodLabel, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Zona: "+r.Summary.Timezone, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) summaryRows(s dto.SalesSummaryDTO) []core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 11, Top: 6}),
		)
	}
	rows := []core.Row{
		row.New(14).Add(
			cell("Ventas de hoy", g.money(s.TodayRevenue)),
			cell("Últimos 7 días", g.money(s.WeekRevenue)),
			cell("Mes en curso", g.money(s.MonthRevenue)),
			cell("Total histórico", g.money(s.TotalRevenue)),
		),
	}
	top := "-"
	if s.TopSellingProduct != nil {
		top = g.printer.Sprintf("%s (%d unidades, %s)",
			s.TopSellingProduct.ProductName, s.TopSellingProduct.QuantitySold, g.money(s.TopSellingProduct.Revenue))
	}
	rows = append(rows, row.New(8).Add(
		col.New(12).Add(text.New(
			g.printer.Sprintf("Ventas: %d   |   Unidades: %d   |   Más vendido: %s", s.TotalSales, s.TotalUnits, top),
			props.Text{Size: 8, Top: 2, Color: colorGray},
		)),
	))
	return rows
}

func (g *MarotoPDFGenerator) dailyRows(days []dto.DailyRevenueDTO) []core.Row {
	if len(days) == 0 {
		return nil
	}
	dates := row.New(6)
	values := row.New(7)
	size := 12 / len(days)
	if size == 0 {
		size = 1
	}
	for _, d := range days {
		dates.Add(col.New(size).Add(text.New(d.Date, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1})))
		values.Add(col.New(size).Add(text.New(g.money(d.Revenue), props.Text{Size: 8, Align: align.Center, Top: 1})))
	}
	return []core.Row{dates, values}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Producto", 5, align.Left),
		h("Cant.", 1, align.Center),
		h("Total", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) saleRow(s dto.SalesReportRow) core.Row {
	return row.New(6).Add(
		col.New(3).Add(text.New(s.SaleDate.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(5).Add(text.New(s.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(fmt.Sprint(s.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(g.money(s.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money redondea a 2 decimales (solo para mostrar) y agrupa miles según el idioma.
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}
