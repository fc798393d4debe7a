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
	"logisticshub/internal/domain/models"
	"logisticshub/internal/repositories"
)

var clientCols = []string{"id", "name", "tax_id", "contact", "created_at"}

func TestListClientsReadsThroughCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := MasterDataService{Clients: repositories.ClientRepository{DB: db}, Cache: cache.NewMemory(time.Minute)}
	ctx := context.Background()

	mock.ExpectQuery("FROM clients").WillReturnRows(sqlmock.NewRows(clientCols).AddRow(1, "Tobar", "", "", time.Now()))
	for i := 0; i < 2; i++ {
		out, err := svc.ListClients(ctx)
		if err != nil || len(out) != 1 || out[0].Name != "Tobar" {
			t.Fatalf("call %d: unexpected %v %v", i, out, err)
		}
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clients")).WillReturnResult(sqlmock.NewResult(2, 1))
	if _, err := svc.CreateClient(ctx, models.Client{Name: "Cosio"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	mock.ExpectQuery("FROM clients").WillReturnRows(sqlmock.NewRows(clientCols).
		AddRow(2, "Cosio", "", "", time.Now()).
		AddRow(1, "Tobar", "", "", time.Now()))
	out, err := svc.ListClients(ctx)
	if err != nil || len(out) != 2 {
		t.Fatalf("expected fresh list after create, got %v %v", out, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateClientRequiresName(t *testing.T) {
	if _, err := (MasterDataService{}).CreateClient(context.Background(), models.Client{Name: "  "}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpsertTariffRejectsNegativePrice(t *testing.T) {
	err := MasterDataService{}.UpsertTariff(context.Background(), 1, 1, decimal.NewFromInt(-5))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
