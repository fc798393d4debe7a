package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Driver struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	TaxID        string    `json:"tax_id"`
	LicenseClass string    `json:"license_class"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Truck struct {
	ID                 int64           `json:"id"`
	Plate              string          `json:"plate"`
	Make               string          `json:"make"`
	Model              string          `json:"model"`
	Year               int             `json:"year"`
	ExpectedKmPerLiter decimal.Decimal `json:"expected_km_per_liter"`
	CreatedAt          time.Time       `json:"created_at"`
}
