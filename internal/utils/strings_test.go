package utils

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseIDList(t *testing.T) {
	cases := map[string][]int64{
		"10, 12-15, 20":   {10, 12, 13, 14, 15, 20},
		"3,3, 1-2":        {1, 2, 3},
		"abc, 5, 9-7, -4": {5},
		"":                {},
		" 7 - 8 ":         {7, 8},
	}
	for in, want := range cases {
		got := ParseIDList(in)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("ParseIDList(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizePlace(t *testing.T) {
	cases := map[string]string{
		"  san   antonio ": "SAN ANTONIO",
		"SAN ANTONIO":      "SAN ANTONIO",
		"los\tandes":       "LOS ANDES",
		"   ":              "",
	}
	for in, want := range cases {
		if got := NormalizePlace(in); got != want {
			t.Fatalf("NormalizePlace(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(decimal.NewFromInt(9408988)); got != "$9.408.988" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatMoney(decimal.NewFromInt(-591012)); got != "-$591.012" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatPercent(decimal.RequireFromString("94.09")); got != "94.09%" {
		t.Fatalf("unexpected %q", got)
	}
}
