package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"logisticshub/internal/cache"
	"logisticshub/internal/domain"
	"logisticshub/internal/repositories"
)

func TestTripCreateWithoutAmountUsesResolver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	svc := TripService{
		Repo: repositories.TripRepository{DB: db},
		Pricing: PricingService{
			Tariffs: repositories.TariffRepository{DB: db},
			Routes:  repositories.RouteRepository{DB: db},
			Cache:   cache.NewMemory(time.Minute),
		},
	}

	mock.ExpectQuery("FROM tariffs").WillReturnRows(sqlmock.NewRows(tariffCols).
		AddRow(3, 7, "650000.00", now, "Cosio", "SAI", "STGO"))
	mock.ExpectQuery("FROM routes").WillReturnRows(sqlmock.NewRows(routeCols).
		AddRow(7, "SAI", "STGO", 120, "500000.00", now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO trips")).
		WithArgs(sqlmock.AnyArg(), int64(3), int64(7), nil, nil, "Scheduled", sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(55, 1))

	saved, err := svc.Create(context.Background(), operator, TripInput{TripDate: "2024-05-10", ClientID: 3, RouteID: 7})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if saved.ID != 55 || saved.PriceSource != PriceFromTariff || !saved.NetAmount.Equal(decimal.NewFromInt(650000)) {
		t.Fatalf("unexpected saved trip: %+v", saved)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripCreateValidatesInput(t *testing.T) {
	cases := []TripInput{
		{TripDate: "10/05/2024", ClientID: 1, RouteID: 1},
		{TripDate: "2024-05-10", RouteID: 1},
		{TripDate: "2024-05-10", ClientID: 1},
		{TripDate: "2024-05-10", ClientID: 1, RouteID: 1, NetAmount: decimal.NewFromInt(-1)},
		{TripDate: "2024-05-10", ClientID: 1, RouteID: 1, Status: "Lost"},
	}
	for i, in := range cases {
		if _, err := (TripService{}).Create(context.Background(), operator, in); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestBulkDeleteExpandsRanges(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM trips WHERE id IN (?,?,?,?,?,?)")).
		WithArgs(int64(10), int64(12), int64(13), int64(14), int64(15), int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 5))

	svc := TripService{Repo: repositories.TripRepository{DB: db}}
	res, err := svc.BulkDelete(context.Background(), operator, "10, 12-15, 20, x")
	if err != nil {
		t.Fatalf("bulk delete error: %v", err)
	}
	if len(res.Requested) != 6 || res.Deleted != 5 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBulkDeleteWithoutIDs(t *testing.T) {
	if _, err := (TripService{}).BulkDelete(context.Background(), operator, " , abc"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
