package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"logisticshub/internal/domain/models"
)

func clientFixture(id int64) models.Client {
	return models.Client{ID: id, Name: "Transportes Sur", TaxID: "76.123.456-7"}
}

func TestTariffUpsertOverwrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE agreed_price=VALUES(agreed_price)")).
		WithArgs(int64(3), int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE agreed_price=VALUES(agreed_price)")).
		WithArgs(int64(3), int64(7), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := TariffRepository{DB: db}
	if err := repo.Upsert(context.Background(), 3, 7, decimal.NewFromInt(600000)); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(context.Background(), 3, 7, decimal.NewFromInt(650000)); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTariffDeleteMissingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tariffs")).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = TariffRepository{DB: db}.Delete(context.Background(), 1, 2)
	if err == nil || err.Error() != "tariff not found" {
		t.Fatalf("expected tariff not found, got %v", err)
	}
}
