package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"

	"logisticshub/internal/domain"
	"logisticshub/internal/domain/models"
	"logisticshub/internal/utils"
)

// ExportService renders the dashboard as PDF and the trip history as xlsx.
// The loaders default to the dashboard and trip services.
type ExportService struct {
	Dashboard DashboardService
	Trips     TripService
	RequestID string

	LoadDashboard func(context.Context, domain.Period, domain.Rates) (Dashboard, error)
	LoadTrips     func(context.Context, domain.Period, int64) ([]models.TripView, error)
	Now           func() time.Time
}

func (s ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s ExportService) DashboardPDF(ctx context.Context, period domain.Period, rates domain.Rates) ([]byte, string, error) {
	load := s.LoadDashboard
	if load == nil {
		load = s.Dashboard.Summary
	}
	d, err := load(ctx, period, rates)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "exports", "dashboard_pdf", "period="+period.String())
	return buildDashboardPDF(d, period, s.now())
}

func (s ExportService) TripsXLSX(ctx context.Context, period domain.Period, clientID int64) ([]byte, string, error) {
	load := s.LoadTrips
	if load == nil {
		load = func(ctx context.Context, p domain.Period, clientID int64) ([]models.TripView, error) {
			return s.Trips.List(ctx, p, clientID, 0)
		}
	}
	trips, err := load(ctx, period, clientID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "exports", "trips_xlsx", fmt.Sprintf("period=%s rows=%d", period.String(), len(trips)))
	return buildTripsXLSX(trips, period)
}

func buildDashboardPDF(d Dashboard, period domain.Period, generated time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Estado de resultados", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("Estado de resultados"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Periodo: "+periodLabel(period)+"   Generado: "+generated.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pl := d.ProfitLoss
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(110, 7, tr(label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, value, "B", 1, "R", false, 0, "")
	}

	row("Ingresos", utils.FormatMoney(pl.Revenue), true)
	row("Viajes", fmt.Sprint(pl.TripCount), false)
	row("Costo chofer variable", utils.FormatMoney(pl.DriverVariableCost), false)
	row(fmt.Sprintf("Costo chofer fijo (%d meses)", pl.MonthsCharged), utils.FormatMoney(pl.DriverFixedCost), false)
	row("Costo chofer total", utils.FormatMoney(pl.DriverCost), true)
	row("Combustible bruto", utils.FormatMoney(pl.FuelGross), false)
	row("IVA recuperable combustible", "-"+utils.FormatMoney(pl.FuelTaxRecovered), false)
	row("Combustible neto", utils.FormatMoney(pl.FuelNet), true)
	row("Otros gastos", utils.FormatMoney(pl.OtherCost), false)
	row("Costo total", utils.FormatMoney(pl.TotalCost), true)
	row("Utilidad", utils.FormatMoney(pl.Profit), true)
	row("Margen", utils.FormatPercent(pl.MarginPercent), true)

	if len(d.Monthly) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Flujo mensual")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, "Mes", "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 6, "Ingresos", "1", 0, "R", false, 0, "")
		pdf.CellFormat(65, 6, "Egresos", "1", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, m := range d.Monthly {
			pdf.CellFormat(40, 6, m.Month, "1", 0, "L", false, 0, "")
			pdf.CellFormat(65, 6, utils.FormatMoney(m.Revenue), "1", 0, "R", false, 0, "")
			pdf.CellFormat(65, 6, utils.FormatMoney(m.Expenses), "1", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Tarifa chofer por viaje %s, costo fijo mensual %s, IVA combustible %s.",
		utils.FormatMoney(d.Rates.DriverTripRate), utils.FormatMoney(d.Rates.MonthlyPayrollCost),
		utils.FormatPercent(d.Rates.FuelTaxRate.Shift(2)))), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("RESULTADOS_%s.pdf", safeFilenamePart(period.String())), nil
}

var tripSheetHeaders = []string{"ID", "Fecha", "Cliente", "Origen", "Destino", "Chofer", "Camion", "Estado", "Monto neto", "Observaciones"}

func buildTripsXLSX(trips []models.TripView, period domain.Period) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Viajes"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", err
	}
	for i, h := range tripSheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	for i, t := range trips {
		rowNo := i + 2
		amount, _ := t.NetAmount.Float64()
		values := []any{t.ID, utils.FormatDate(t.TripDate), t.ClientName, t.Origin, t.Destination,
			t.DriverName, t.TruckPlate, string(t.Status), amount, t.Notes}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNo)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("VIAJES_%s.xlsx", safeFilenamePart(period.String())), nil
}

func periodLabel(p domain.Period) string {
	if p.Year == 0 {
		return "todo el historial"
	}
	return p.String()
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
