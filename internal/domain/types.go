package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Session carries the authenticated operator of a single request.
type Session struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// Period filters the dashboard: zero Year means all data, zero Month means the whole year.
type Period struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
}

func (p Period) Validate() error {
	if p.Month != 0 && p.Year == 0 {
		return ValidationError{Field: "month", Msg: "month requires a year"}
	}
	if p.Month < 0 || p.Month > 12 {
		return ValidationError{Field: "month", Msg: "must be 1..12"}
	}
	if p.Year < 0 || (p.Year != 0 && (p.Year < 1990 || p.Year > 2100)) {
		return ValidationError{Field: "year", Msg: "out of range"}
	}
	return nil
}

// SingleMonth reports whether exactly one calendar month was selected.
func (p Period) SingleMonth() bool { return p.Year != 0 && p.Month != 0 }

// Bounds returns the half-open date range [from, to). ok is false for "all data".
func (p Period) Bounds() (from, to time.Time, ok bool) {
	switch {
	case p.Year == 0:
		return time.Time{}, time.Time{}, false
	case p.Month == 0:
		from = time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.Local)
		return from, from.AddDate(1, 0, 0), true
	default:
		from = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.Local)
		return from, from.AddDate(0, 1, 0), true
	}
}

func (p Period) String() string {
	switch {
	case p.Year == 0:
		return "all"
	case p.Month == 0:
		return fmt.Sprintf("%04d", p.Year)
	default:
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	}
}

// Rates are the business values the operator enters on the dashboard.
type Rates struct {
	DriverTripRate     decimal.Decimal `json:"driver_trip_rate"`
	MonthlyPayrollCost decimal.Decimal `json:"monthly_payroll_cost"`
	FuelTaxRate        decimal.Decimal `json:"fuel_tax_rate"` // fraction, 0.19 = 19%
}

// NewRates builds Rates from whole-currency amounts and a percentage.
func NewRates(driverTripRate, monthlyPayrollCost, fuelTaxPercent int64) (Rates, error) {
	if driverTripRate < 0 || monthlyPayrollCost < 0 {
		return Rates{}, ValidationError{Field: "rates", Msg: "must not be negative"}
	}
	if fuelTaxPercent < 0 || fuelTaxPercent > 100 {
		return Rates{}, ValidationError{Field: "fuel_tax_pct", Msg: "must be 0..100"}
	}
	return Rates{
		DriverTripRate:     decimal.NewFromInt(driverTripRate),
		MonthlyPayrollCost: decimal.NewFromInt(monthlyPayrollCost),
		FuelTaxRate:        decimal.NewFromInt(fuelTaxPercent).Div(decimal.NewFromInt(100)),
	}, nil
}
