package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VariableCategory marks expenses that move with operation volume.
const VariableCategory = "VARIABLE"

// FuelKeywords identify fuel purchases inside variable expenses.
var FuelKeywords = []string{"PETRÓLEO", "PETROLEO"}

// RevenueLine is one trip as seen by the aggregation.
type RevenueLine struct {
	Date   time.Time
	Amount decimal.Decimal
}

// ExpenseLine is one expense as seen by the aggregation.
type ExpenseLine struct {
	Date        time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
}

type ProfitLoss struct {
	Period Period `json:"period"`

	Revenue   decimal.Decimal `json:"revenue"`
	TripCount int             `json:"trip_count"`

	DriverVariableCost decimal.Decimal `json:"driver_variable_cost"`
	MonthsCharged      int             `json:"months_charged"`
	DriverFixedCost    decimal.Decimal `json:"driver_fixed_cost"`
	DriverCost         decimal.Decimal `json:"driver_cost"`

	FuelGross        decimal.Decimal `json:"fuel_gross"`
	FuelTaxRecovered decimal.Decimal `json:"fuel_tax_recovered"`
	FuelNet          decimal.Decimal `json:"fuel_net"`

	OtherCost decimal.Decimal `json:"other_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`

	Profit        decimal.Decimal `json:"profit"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

type MonthlyPoint struct {
	Month    string          `json:"month"` // YYYY-MM
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

type CostSlice struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// IsFuelExpense matches variable expenses whose description names fuel.
func IsFuelExpense(e ExpenseLine) bool {
	if !strings.EqualFold(strings.TrimSpace(e.Category), VariableCategory) {
		return false
	}
	desc := strings.ToUpper(e.Description)
	for _, kw := range FuelKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// ComputeProfitLoss derives the dashboard figures from trips and expenses already
// filtered to period.
func ComputeProfitLoss(trips []RevenueLine, expenses []ExpenseLine, period Period, rates Rates) ProfitLoss {
	out := ProfitLoss{Period: period, TripCount: len(trips)}

	for _, t := range trips {
		out.Revenue = out.Revenue.Add(t.Amount)
	}

	out.DriverVariableCost = rates.DriverTripRate.Mul(decimal.NewFromInt(int64(len(trips))))
	out.MonthsCharged = monthsCharged(trips, expenses, period)
	out.DriverFixedCost = rates.MonthlyPayrollCost.Mul(decimal.NewFromInt(int64(out.MonthsCharged)))
	out.DriverCost = out.DriverVariableCost.Add(out.DriverFixedCost)

	for _, e := range expenses {
		if IsFuelExpense(e) {
			out.FuelGross = out.FuelGross.Add(e.Amount)
			continue
		}
		out.OtherCost = out.OtherCost.Add(e.Amount)
	}
	out.FuelTaxRecovered = out.FuelGross.Mul(rates.FuelTaxRate)
	out.FuelNet = out.FuelGross.Sub(out.FuelTaxRecovered)

	out.TotalCost = out.DriverCost.Add(out.FuelNet).Add(out.OtherCost)
	out.Profit = out.Revenue.Sub(out.TotalCost)

	if out.Revenue.IsPositive() {
		out.Margin = out.Profit.DivRound(out.Revenue, 6)
		out.MarginPercent = out.Margin.Mul(decimal.NewFromInt(100)).Round(2)
	}
	return out
}

// A selected month is charged once; otherwise every calendar month that shows
// up in the data is charged, and nothing at all without trips.
func monthsCharged(trips []RevenueLine, expenses []ExpenseLine, period Period) int {
	if period.SingleMonth() {
		return 1
	}
	if len(trips) == 0 {
		return 0
	}
	seen := map[string]struct{}{}
	for _, t := range trips {
		seen[monthKey(t.Date)] = struct{}{}
	}
	for _, e := range expenses {
		seen[monthKey(e.Date)] = struct{}{}
	}
	return len(seen)
}

// MonthlySeries groups revenue and expenses per calendar month. Months with
// expenses also carry the fixed monthly payroll cost.
func MonthlySeries(trips []RevenueLine, expenses []ExpenseLine, rates Rates) []MonthlyPoint {
	points := map[string]*MonthlyPoint{}
	get := func(key string) *MonthlyPoint {
		p, ok := points[key]
		if !ok {
			p = &MonthlyPoint{Month: key}
			points[key] = p
		}
		return p
	}

	for _, t := range trips {
		p := get(monthKey(t.Date))
		p.Revenue = p.Revenue.Add(t.Amount)
	}
	charged := map[string]bool{}
	for _, e := range expenses {
		key := monthKey(e.Date)
		p := get(key)
		p.Expenses = p.Expenses.Add(e.Amount)
		if !charged[key] {
			p.Expenses = p.Expenses.Add(rates.MonthlyPayrollCost)
			charged[key] = true
		}
	}

	out := make([]MonthlyPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CostStructure lists the non-zero cost components.
func CostStructure(pl ProfitLoss) []CostSlice {
	all := []CostSlice{
		{Label: "driver", Amount: pl.DriverCost},
		{Label: "fuel_net", Amount: pl.FuelNet},
		{Label: "other", Amount: pl.OtherCost},
	}
	out := make([]CostSlice, 0, len(all))
	for _, s := range all {
		if s.Amount.IsPositive() {
			out = append(out, s)
		}
	}
	return out
}

// AvailableYears dedups years and sorts them newest first. Without data the
// current year is offered.
func AvailableYears(years []int, now time.Time) []int {
	seen := map[int]struct{}{}
	for _, y := range years {
		if y <= 0 {
			continue
		}
		seen[y] = struct{}{}
	}
	if len(seen) == 0 {
		return []int{now.Year()}
	}
	out := make([]int, 0, len(seen))
	for y := range seen {
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
