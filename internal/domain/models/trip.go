package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TripStatus string

const (
	TripScheduled TripStatus = "Scheduled"
	TripInTransit TripStatus = "In-Transit"
	TripCompleted TripStatus = "Completed"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripScheduled, TripInTransit, TripCompleted:
		return true
	}
	return false
}

type Trip struct {
	ID        int64           `json:"id"`
	TripDate  time.Time       `json:"trip_date"`
	ClientID  int64           `json:"client_id"`
	RouteID   int64           `json:"route_id"`
	DriverID  *int64          `json:"driver_id,omitempty"`
	TruckID   *int64          `json:"truck_id,omitempty"`
	Status    TripStatus      `json:"status"`
	NetAmount decimal.Decimal `json:"net_amount"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

// TripView is a trip joined with its client and route labels.
type TripView struct {
	Trip
	ClientName  string `json:"client_name"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DriverName  string `json:"driver_name,omitempty"`
	TruckPlate  string `json:"truck_plate,omitempty"`
}
