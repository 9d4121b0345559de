package ports

import "github.com/jhoicas/smart-inventory-api/internal/application/dto"

// ReportGenerator define el puerto para renderizar el reporte de ventas a PDF.
type ReportGenerator interface {
	GenerateSalesReport(report dto.SalesReportDTO) ([]byte, error)
}
