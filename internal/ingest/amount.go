package ingest

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CleanAmount reads a money cell. Numbers are taken as stored. Text such as
// "$1.234.567,00" loses the currency sign, everything from the first comma
// and the thousands dots. Anything unparsable is zero.
func CleanAmount(c Cell) decimal.Decimal {
	if c.Numeric {
		return decimal.NewFromFloat(c.Number)
	}
	return CleanAmountText(c.Text)
}

func CleanAmountText(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, "$", ""))
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
