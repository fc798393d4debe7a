package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Route is a canonical origin/destination pair. Origin and destination are
// stored uppercased.
type Route struct {
	ID             int64           `json:"id"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	DistanceKm     int             `json:"distance_km"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NeedsReview is true for routes created implicitly and not yet completed by
// an operator.
func (r Route) NeedsReview() bool {
	return r.DistanceKm == 0 || r.SuggestedPrice.IsZero()
}
