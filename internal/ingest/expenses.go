package ingest

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultExpenseDetail   = "Sin detalle"
	DefaultExpenseCategory = "GASTO GENERAL"
)

// PayrollKeywords mark expense rows that duplicate the driver cost computed
// by the dashboard.
var PayrollKeywords = []string{"SUELDO", "IMPOSICIONES", "PREVIRED"}

type ExpenseRow struct {
	Line        int
	Date        time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
	Supplier    string
}

type ExpenseSheet struct {
	Rows               []ExpenseRow
	Errors             []RowError
	DroppedMissing     int
	SkippedPayroll     int
	DroppedNonPositive int
}

func ParseExpenses(t *Table) ExpenseSheet {
	out := ExpenseSheet{}
	for _, r := range t.Rows {
		if r.Get(RoleDate).Empty() || r.Get(RoleAmount).Empty() {
			out.DroppedMissing++
			continue
		}
		date, err := ParseDate(r.Get(RoleDate))
		if errors.Is(err, errNoDate) {
			out.DroppedMissing++
			continue
		}
		if err != nil {
			out.Errors = append(out.Errors, RowError{Line: r.Line, Field: "FECHA", Message: err.Error()})
			continue
		}

		detail := cellText(r.Get(RoleDetail))
		if detail == "" {
			detail = DefaultExpenseDetail
		}
		if IsPayroll(detail) {
			out.SkippedPayroll++
			continue
		}

		amount := CleanAmount(r.Get(RoleAmount))
		if !amount.IsPositive() {
			out.DroppedNonPositive++
			continue
		}

		category := cellText(r.Get(RoleCategory))
		if category == "" {
			category = DefaultExpenseCategory
		}
		out.Rows = append(out.Rows, ExpenseRow{
			Line:        r.Line,
			Date:        date,
			Category:    category,
			Description: detail,
			Amount:      amount,
			Supplier:    detail,
		})
	}
	return out
}

func IsPayroll(detail string) bool {
	upper := strings.ToUpper(detail)
	for _, kw := range PayrollKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}
