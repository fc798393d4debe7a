package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tariff is the price agreed with one client for one route.
type Tariff struct {
	ClientID    int64           `json:"client_id"`
	RouteID     int64           `json:"route_id"`
	AgreedPrice decimal.Decimal `json:"agreed_price"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TariffView joins client and route labels for listing.
type TariffView struct {
	Tariff
	ClientName  string `json:"client_name"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}
