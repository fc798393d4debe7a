package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          int64           `json:"id"`
	ExpenseDate time.Time       `json:"expense_date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Supplier    string          `json:"supplier"`
	CreatedAt   time.Time       `json:"created_at"`
}
