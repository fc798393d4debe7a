package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"logisticshub/internal/domain"
)

// ratesFromQuery starts from the configured defaults and applies any of
// driver_rate, monthly_cost and fuel_tax_pct given in the query.
func ratesFromQuery(c *gin.Context) (domain.Rates, error) {
	def := currentSettings().DefaultRates
	driver := def.DriverTripRate.IntPart()
	monthly := def.MonthlyPayrollCost.IntPart()
	pct := def.FuelTaxRate.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	for name, dst := range map[string]*int64{"driver_rate": &driver, "monthly_cost": &monthly, "fuel_tax_pct": &pct} {
		if strings.TrimSpace(c.Query(name)) == "" {
			continue
		}
		v, err := queryInt64(c, name)
		if err != nil {
			return domain.Rates{}, err
		}
		*dst = v
	}
	return domain.NewRates(driver, monthly, pct)
}

func dashboardParams(c *gin.Context) (domain.Period, domain.Rates, bool) {
	period, err := periodFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return domain.Period{}, domain.Rates{}, false
	}
	rates, err := ratesFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return domain.Period{}, domain.Rates{}, false
	}
	return period, rates, true
}

// GET /api/dashboard?year=&month=&driver_rate=&monthly_cost=&fuel_tax_pct=
func GetDashboard(c *gin.Context) {
	period, rates, ok := dashboardParams(c)
	if !ok {
		return
	}
	d, err := dashboardService().Summary(c.Request.Context(), period, rates)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GET /api/dashboard/export.pdf with the same parameters.
func ExportDashboard(c *gin.Context) {
	period, rates, ok := dashboardParams(c)
	if !ok {
		return
	}
	data, filename, err := exportService(c).DashboardPDF(c.Request.Context(), period, rates)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, "application/pdf", "inline", filename, data)
}
