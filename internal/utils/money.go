package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders whole currency units with dot thousand separators, "$1.234.567".
func FormatMoney(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "$" + formatThousand(n)
}

// FormatPercent renders a percentage with two decimals, "94.09%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
