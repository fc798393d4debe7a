package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"logisticshub/internal/domain"
	"logisticshub/internal/domain/models"
	"logisticshub/internal/repositories"
	"logisticshub/internal/utils"
)

type ExpenseInput struct {
	ExpenseDate string          `json:"expense_date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Supplier    string          `json:"supplier"`
}

type ExpenseService struct {
	Repo      repositories.ExpenseRepository
	RequestID string
}

func (in ExpenseInput) toExpense() (models.Expense, error) {
	date, err := utils.ParseDate(in.ExpenseDate)
	if err != nil {
		return models.Expense{}, domain.ValidationError{Field: "expense_date", Msg: "expected YYYY-MM-DD"}
	}
	e := models.Expense{
		ExpenseDate: date,
		Category:    strings.ToUpper(strings.TrimSpace(in.Category)),
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Supplier:    strings.TrimSpace(in.Supplier),
	}
	return e, validateExpense(&e)
}

func (s ExpenseService) List(ctx context.Context, period domain.Period) ([]models.Expense, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx, period)
}

func (s ExpenseService) Create(ctx context.Context, session domain.Session, in ExpenseInput) (int64, error) {
	e, err := in.toExpense()
	if err != nil {
		return 0, err
	}
	id, err := s.Repo.Create(ctx, e)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "expenses", "create", fmt.Sprintf("user=%s id=%d category=%s", session.Username, id, e.Category))
	return id, nil
}

func (s ExpenseService) Update(ctx context.Context, session domain.Session, id int64, in ExpenseInput) error {
	e, err := in.toExpense()
	if err != nil {
		return err
	}
	e.ID = id
	if err := s.Repo.Update(ctx, e); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "expenses", "update", fmt.Sprintf("user=%s id=%d", session.Username, id))
	return nil
}

func (s ExpenseService) Delete(ctx context.Context, session domain.Session, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "expenses", "delete", fmt.Sprintf("user=%s id=%d", session.Username, id))
	return nil
}
