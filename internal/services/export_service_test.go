package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"logisticshub/internal/domain"
	"logisticshub/internal/domain/models"
)

func TestDashboardPDF(t *testing.T) {
	rates, _ := domain.NewRates(10000, 106012, 19)
	svc := ExportService{
		LoadDashboard: func(_ context.Context, p domain.Period, r domain.Rates) (Dashboard, error) {
			pl := domain.ComputeProfitLoss(
				[]domain.RevenueLine{{Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local), Amount: decimal.NewFromInt(1250000)}},
				[]domain.ExpenseLine{{Date: time.Date(2024, 5, 3, 0, 0, 0, 0, time.Local), Category: "VARIABLE", Description: "Petróleo", Amount: decimal.NewFromInt(300000)}},
				p, r)
			return Dashboard{
				ProfitLoss:    pl,
				Monthly:       []domain.MonthlyPoint{{Month: "2024-05", Revenue: pl.Revenue, Expenses: pl.TotalCost}},
				CostStructure: domain.CostStructure(pl),
				Rates:         r,
			}, nil
		},
		Now: func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local) },
	}

	pdf, filename, err := svc.DashboardPDF(context.Background(), domain.Period{Year: 2024, Month: 5}, rates)
	if err != nil {
		t.Fatalf("DashboardPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected a PDF document")
	}
	if filename != "RESULTADOS_2024-05.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDashboardPDFPropagatesLoadError(t *testing.T) {
	boom := errors.New("db down")
	svc := ExportService{LoadDashboard: func(context.Context, domain.Period, domain.Rates) (Dashboard, error) {
		return Dashboard{}, boom
	}}
	if _, _, err := svc.DashboardPDF(context.Background(), domain.Period{}, domain.Rates{}); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestTripsXLSX(t *testing.T) {
	svc := ExportService{
		LoadTrips: func(_ context.Context, _ domain.Period, clientID int64) ([]models.TripView, error) {
			if clientID != 3 {
				t.Fatalf("unexpected client filter %d", clientID)
			}
			return []models.TripView{{
				Trip: models.Trip{
					ID:        9,
					TripDate:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local),
					ClientID:  3,
					RouteID:   7,
					Status:    models.TripCompleted,
					NetAmount: decimal.NewFromInt(1250000),
					Notes:     "Contenedor: ABC123",
				},
				ClientName:  "Cosio",
				Origin:      "SAI",
				Destination: "STGO",
			}}, nil
		},
	}

	data, filename, err := svc.TripsXLSX(context.Background(), domain.Period{Year: 2024}, 3)
	if err != nil {
		t.Fatalf("TripsXLSX returned error: %v", err)
	}
	if filename != "VIAJES_2024.xlsx" {
		t.Fatalf("unexpected filename %q", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Viajes")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "ID" || rows[1][2] != "Cosio" || rows[1][1] != "2024-05-01" {
		t.Fatalf("unexpected sheet contents: %v", rows)
	}
}
