package ingest

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"logisticshub/internal/domain"
)

type cellSpec struct {
	axis  string
	value any
}

func workbook(t *testing.T, sheet string, cells []cellSpec) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "" && sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	} else {
		sheet = "Sheet1"
	}
	for _, c := range cells {
		require.NoError(t, f.SetCellValue(sheet, c.axis, c.value))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestReadTableTobar(t *testing.T) {
	r := workbook(t, "", []cellSpec{
		{"A1", "Transportes Tobar - planilla mensual"},
		{"A24", " fecha "}, {"B24", "SIGLA CONTENEDOR"}, {"C24", "NUMERO CONTENEDOR"},
		{"G24", "DESDE"}, {"H24", "HASTA"}, {"I24", "IGNORED"},
		{"A25", "2024-05-01"}, {"B25", "MSCU"}, {"C25", 1234567}, {"G25", " san antonio"}, {"H25", "santiago "},
		{"A26", 45413}, {"B26", "TGHU"}, {"C26", "7654321"}, {"G26", "SAI"}, {"H26", "STGO"},
		{"B27", "CAIU"}, {"G27", "SAI"}, {"H27", "STGO"},
	})

	table, err := ReadTable(r, Tobar)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.NotContains(t, table.Headers, "IGNORED")

	parsed := ParseTrips(table)
	require.Len(t, parsed.Rows, 2)
	assert.Equal(t, 1, parsed.DroppedNoDate)
	assert.Empty(t, parsed.Errors)

	first := parsed.Rows[0]
	assert.Equal(t, 25, first.Line)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), first.Date)
	assert.Equal(t, "san antonio", first.Origin)
	assert.Equal(t, "MSCU 1234567", first.Shipment)
	assert.True(t, first.Amount.IsZero())

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), parsed.Rows[1].Date)
}

func TestReadTableCosioAmounts(t *testing.T) {
	r := workbook(t, "", []cellSpec{
		{"A10", "FECHA"}, {"B10", "CONTENEDOR"}, {"C10", "DESDE"}, {"D10", "HASTA"}, {"E10", "MONTO"},
		{"A11", "02/05/2024"}, {"B11", "ABC123"}, {"C11", "SAI"}, {"D11", "STGO"}, {"E11", "$1.234.567,00"},
		{"A12", "03-05-2024"}, {"B12", "ABC124"}, {"C12", "SAI"}, {"D12", "STGO"}, {"E12", 1200},
		{"A13", "not a date"}, {"B13", "ABC125"}, {"C13", "SAI"}, {"D13", "STGO"}, {"E13", "abc"},
	})

	table, err := ReadTable(r, Cosio)
	require.NoError(t, err)
	parsed := ParseTrips(table)

	require.Len(t, parsed.Rows, 2)
	assert.Equal(t, "1234567", parsed.Rows[0].Amount.String())
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local), parsed.Rows[0].Date)
	assert.Equal(t, "1200", parsed.Rows[1].Amount.String())
	require.Len(t, parsed.Errors, 1)
	assert.Equal(t, 13, parsed.Errors[0].Line)
}

func TestReadTableMissingColumnsFailsFast(t *testing.T) {
	r := workbook(t, "", []cellSpec{
		{"A24", "FECHA"}, {"G24", "DESDE"},
	})

	_, err := ReadTable(r, Tobar)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "HASTA")
	assert.Contains(t, err.Error(), "columns found on row 24: FECHA, DESDE")
}

func TestReadTableMissingSheet(t *testing.T) {
	r := workbook(t, "Hoja1", []cellSpec{{"A1", "FECHA"}, {"B1", "MONTO"}})

	_, err := ReadTable(r, Expenses)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "input_costos" not found`)
}

func TestReadTableRejectsNonWorkbook(t *testing.T) {
	_, err := ReadTable(bytes.NewReader([]byte("FECHA,MONTO\n")), Expenses)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestParseExpensesFiltersPayrollAndNonPositive(t *testing.T) {
	r := workbook(t, "input_costos", []cellSpec{
		{"A1", "FECHA"}, {"B1", "CATEGORIA"}, {"C1", "DETALLE"}, {"D1", "MONTO"},
		{"A2", "2024-05-03"}, {"B2", "VARIABLE"}, {"C2", "Petróleo Copec"}, {"D2", "$500.000"},
		{"A3", "2024-05-04"}, {"B3", "FIJO"}, {"C3", "Sueldo chofer"}, {"D3", 900000},
		{"A4", "2024-05-05"}, {"C4", "Peaje"}, {"D4", 0},
		{"A5", "2024-05-06"}, {"D5", 15000},
		{"A6", "2024-05-07"}, {"C6", "sin monto"},
		{"A7", "2024-05-31"}, {"C7", "PREVIRED mayo"}, {"D7", 106012},
	})

	table, err := ReadTable(r, Expenses)
	require.NoError(t, err)
	parsed := ParseExpenses(table)

	require.Len(t, parsed.Rows, 2)
	assert.Equal(t, 2, parsed.SkippedPayroll)
	assert.Equal(t, 1, parsed.DroppedNonPositive)
	assert.Equal(t, 1, parsed.DroppedMissing)

	fuel := parsed.Rows[0]
	assert.Equal(t, "VARIABLE", fuel.Category)
	assert.Equal(t, "500000", fuel.Amount.String())
	assert.Equal(t, fuel.Description, fuel.Supplier)

	generic := parsed.Rows[1]
	assert.Equal(t, DefaultExpenseDetail, generic.Description)
	assert.Equal(t, DefaultExpenseCategory, generic.Category)
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	for _, s := range []string{"2024-05-01", "01-05-2024", "01/05/2024", "2024/05/01", "2024-05-01 13:45:00", "2024-05-01T08:00:00"} {
		got, err := ParseDate(Cell{Text: s})
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := ParseDate(Cell{Text: "31/31/2024"})
	assert.Error(t, err)
}

func TestLookupFormat(t *testing.T) {
	f, err := Lookup(" TOBAR ")
	require.NoError(t, err)
	assert.False(t, f.HasAmount())

	f, err = Lookup("cosio")
	require.NoError(t, err)
	assert.True(t, f.HasAmount())

	_, err = Lookup("unknown")
	assert.True(t, domain.IsValidation(err))

	assert.Len(t, Formats(KindTrips), 2)
}
