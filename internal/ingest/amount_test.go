package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanAmount(t *testing.T) {
	cases := []struct {
		name string
		cell Cell
		want string
	}{
		{"locale text", Cell{Text: "$1.234.567,00"}, "1234567"},
		{"garbage", Cell{Text: "abc"}, "0"},
		{"numeric", Cell{Text: "1200", Numeric: true, Number: 1200}, "1200"},
		{"numeric with decimals", Cell{Text: "1500.5", Numeric: true, Number: 1500.5}, "1500.5"},
		{"spaced symbol", Cell{Text: " $ 650.000 "}, "650000"},
		{"empty", Cell{}, "0"},
		{"text digits", Cell{Text: "500000"}, "500000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanAmount(tc.cell).String())
		})
	}
}
