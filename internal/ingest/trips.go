package ingest

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RowError is a per-row problem that does not stop the batch.
type RowError struct {
	Line    int    `json:"line"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type TripRow struct {
	Line        int
	Date        time.Time
	Origin      string
	Destination string
	Shipment    string
	// Amount is zero when the format has no amount column or the cell was
	// empty or unparsable.
	Amount decimal.Decimal
}

type TripSheet struct {
	Rows          []TripRow
	Errors        []RowError
	DroppedNoDate int
}

// ParseTrips maps every row of a trip table into a TripRow. Rows without a
// date are dropped and counted, unparsable dates become row errors.
func ParseTrips(t *Table) TripSheet {
	out := TripSheet{}
	hasAmount := t.Format.HasAmount()
	for _, r := range t.Rows {
		date, err := ParseDate(r.Get(RoleDate))
		if errors.Is(err, errNoDate) {
			out.DroppedNoDate++
			continue
		}
		if err != nil {
			out.Errors = append(out.Errors, RowError{Line: r.Line, Field: "FECHA", Message: err.Error()})
			continue
		}

		row := TripRow{
			Line:        r.Line,
			Date:        date,
			Origin:      cellText(r.Get(RoleOrigin)),
			Destination: cellText(r.Get(RoleDestination)),
			Shipment:    shipmentID(r),
		}
		if hasAmount {
			row.Amount = CleanAmount(r.Get(RoleAmount))
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// shipmentID joins prefix and number ("MSCU 1234567") when the format splits them.
func shipmentID(r Row) string {
	parts := []string{}
	for _, role := range []Role{RoleShipmentPrefix, RoleShipment} {
		if v := cellText(r.Get(role)); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

func cellText(c Cell) string {
	return strings.TrimSpace(c.Text)
}
