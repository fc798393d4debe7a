package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"logisticshub/internal/domain"
	"logisticshub/internal/repositories"
)

func TestDashboardSummaryForOneMonth(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	period := domain.Period{Year: 2024, Month: 5}
	from, to, _ := period.Bounds()

	trips := sqlmock.NewRows([]string{"trip_date", "net_amount"})
	for d := 1; d <= 8; d++ {
		trips.AddRow(time.Date(2024, 5, d, 0, 0, 0, 0, time.Local), "1250000.00")
	}
	mock.ExpectQuery("SELECT trip_date, net_amount FROM trips").WithArgs(from, to).WillReturnRows(trips)
	mock.ExpectQuery("SELECT expense_date, category, description, amount FROM expenses").WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"expense_date", "category", "description", "amount"}).
			AddRow(time.Date(2024, 5, 3, 0, 0, 0, 0, time.Local), "VARIABLE", "Petroleo Copec", "300000.00").
			AddRow(time.Date(2024, 5, 20, 0, 0, 0, 0, time.Local), "VARIABLE", "petroleo", "200000.00"))
	mock.ExpectQuery("SELECT YEAR").WillReturnRows(sqlmock.NewRows([]string{"y"}).AddRow(2023).AddRow(2024))

	rates, err := domain.NewRates(10000, 106012, 19)
	if err != nil {
		t.Fatalf("rates: %v", err)
	}
	svc := DashboardService{
		Trips:    repositories.TripRepository{DB: db},
		Expenses: repositories.ExpenseRepository{DB: db},
		Now:      func() time.Time { return time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local) },
	}

	d, err := svc.Summary(context.Background(), period, rates)
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	if !d.ProfitLoss.Profit.Equal(decimal.NewFromInt(9408988)) {
		t.Fatalf("expected profit 9408988, got %s", d.ProfitLoss.Profit)
	}
	if d.ProfitLoss.MarginPercent.StringFixed(2) != "94.09" {
		t.Fatalf("expected margin 94.09, got %s", d.ProfitLoss.MarginPercent.StringFixed(2))
	}
	if len(d.Monthly) != 1 || d.Monthly[0].Month != "2024-05" {
		t.Fatalf("unexpected monthly series: %+v", d.Monthly)
	}
	if len(d.AvailableYears) != 2 || d.AvailableYears[0] != 2024 {
		t.Fatalf("expected years newest first, got %v", d.AvailableYears)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDashboardSummaryRejectsMonthWithoutYear(t *testing.T) {
	_, err := DashboardService{}.Summary(context.Background(), domain.Period{Month: 3}, domain.Rates{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
