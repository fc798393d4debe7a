// Package ingest turns uploaded spreadsheets into trip and expense candidates.
// Every supported layout is described by a Format and validated before any
// row is read.
package ingest

import (
	"sort"
	"strings"

	"logisticshub/internal/domain"
)

type Kind string

const (
	KindTrips    Kind = "trips"
	KindExpenses Kind = "expenses"
)

// Role is what a column means to the pipeline, independent of its header text.
type Role string

const (
	RoleDate           Role = "date"
	RoleOrigin         Role = "origin"
	RoleDestination    Role = "destination"
	RoleShipment       Role = "shipment"
	RoleShipmentPrefix Role = "shipment_prefix"
	RoleAmount         Role = "amount"
	RoleCategory       Role = "category"
	RoleDetail         Role = "detail"
)

type Column struct {
	Role     Role   `json:"role"`
	Header   string `json:"header"`
	Required bool   `json:"required"`
}

type Format struct {
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Description string   `json:"description"`
	Sheet       string   `json:"sheet,omitempty"` // empty = first sheet
	HeaderRow   int      `json:"header_row"`      // 1-based
	FirstCol    string   `json:"first_col,omitempty"`
	LastCol     string   `json:"last_col,omitempty"`
	Columns     []Column `json:"columns"`
}

// HasAmount reports whether rows carry their own amount.
func (f Format) HasAmount() bool {
	_, ok := f.column(RoleAmount)
	return ok
}

func (f Format) column(role Role) (Column, bool) {
	for _, c := range f.Columns {
		if c.Role == role {
			return c, true
		}
	}
	return Column{}, false
}

var (
	Tobar = Format{
		Name:        "tobar",
		Kind:        KindTrips,
		Description: "Header on row 24, columns A to H, no amount column",
		HeaderRow:   24,
		FirstCol:    "A",
		LastCol:     "H",
		Columns: []Column{
			{Role: RoleDate, Header: "FECHA", Required: true},
			{Role: RoleOrigin, Header: "DESDE", Required: true},
			{Role: RoleDestination, Header: "HASTA", Required: true},
			{Role: RoleShipmentPrefix, Header: "SIGLA CONTENEDOR", Required: true},
			{Role: RoleShipment, Header: "NUMERO CONTENEDOR", Required: true},
		},
	}

	Cosio = Format{
		Name:        "cosio",
		Kind:        KindTrips,
		Description: "Header on row 10, columns A to G, amount in MONTO",
		HeaderRow:   10,
		FirstCol:    "A",
		LastCol:     "G",
		Columns: []Column{
			{Role: RoleDate, Header: "FECHA", Required: true},
			{Role: RoleOrigin, Header: "DESDE", Required: true},
			{Role: RoleDestination, Header: "HASTA", Required: true},
			{Role: RoleShipment, Header: "CONTENEDOR", Required: true},
			{Role: RoleAmount, Header: "MONTO", Required: true},
		},
	}

	Expenses = Format{
		Name:        "expenses",
		Kind:        KindExpenses,
		Description: "Sheet input_costos, header on row 1",
		Sheet:       "input_costos",
		HeaderRow:   1,
		Columns: []Column{
			{Role: RoleDate, Header: "FECHA", Required: true},
			{Role: RoleAmount, Header: "MONTO", Required: true},
			{Role: RoleDetail, Header: "DETALLE"},
			{Role: RoleCategory, Header: "CATEGORIA"},
		},
	}
)

var registry = map[string]Format{
	Tobar.Name:    Tobar,
	Cosio.Name:    Cosio,
	Expenses.Name: Expenses,
}

// Lookup finds a format by name, case-insensitively.
func Lookup(name string) (Format, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Format{}, domain.ValidationError{Field: "format", Msg: "unknown format " + name}
	}
	return f, nil
}

// Formats lists every registered format of kind, or all when kind is empty.
func Formats(kind Kind) []Format {
	out := []Format{}
	for _, f := range registry {
		if kind == "" || f.Kind == kind {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
