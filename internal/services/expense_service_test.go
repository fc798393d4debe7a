package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"logisticshub/internal/domain"
	"logisticshub/internal/ingest"
	"logisticshub/internal/repositories"
)

func TestExpenseCreateNormalizesAndDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO expenses")).
		WithArgs(sqlmock.AnyArg(), "VARIABLE", ingest.DefaultExpenseDetail, sqlmock.AnyArg(), "Copec").
		WillReturnResult(sqlmock.NewResult(8, 1))

	svc := ExpenseService{Repo: repositories.ExpenseRepository{DB: db}}
	id, err := svc.Create(context.Background(), operator, ExpenseInput{
		ExpenseDate: "2024-05-03",
		Category:    " variable ",
		Amount:      decimal.NewFromInt(300000),
		Supplier:    "Copec",
	})
	if err != nil || id != 8 {
		t.Fatalf("unexpected create result %d %v", id, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExpenseCreateRejectsInvalidInput(t *testing.T) {
	cases := []ExpenseInput{
		{ExpenseDate: "03-05-2024", Amount: decimal.NewFromInt(10)},
		{ExpenseDate: "2024-05-03", Amount: decimal.Zero},
		{ExpenseDate: "2024-05-03", Amount: decimal.NewFromInt(-10)},
	}
	for i, in := range cases {
		if _, err := (ExpenseService{}).Create(context.Background(), operator, in); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestExpenseListRejectsMonthWithoutYear(t *testing.T) {
	if _, err := (ExpenseService{}).List(context.Background(), domain.Period{Month: 4}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
