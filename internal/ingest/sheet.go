package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"logisticshub/internal/domain"
)

// Cell is a raw cell value plus whether the workbook stored it as a number.
type Cell struct {
	Text    string
	Numeric bool
	Number  float64
}

func (c Cell) Empty() bool { return !c.Numeric && strings.TrimSpace(c.Text) == "" }

// Row is one data row; Line is the 1-based row number in the sheet.
type Row struct {
	Line  int
	cells map[Role]Cell
}

func (r Row) Get(role Role) Cell { return r.cells[role] }

func (r Row) blank() bool {
	for _, c := range r.cells {
		if !c.Empty() {
			return false
		}
	}
	return true
}

type Table struct {
	Format  Format
	Sheet   string
	Headers []string
	Rows    []Row
}

// ReadTable opens the workbook in r, validates it against f and returns every
// non-blank row below the header.
func ReadTable(r io.Reader, f Format) (*Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.ValidationError{Field: "file", Msg: "not a readable xlsx workbook", Err: err}
	}
	defer wb.Close()

	sheet, err := pickSheet(wb, f)
	if err != nil {
		return nil, err
	}

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.ValidationError{Field: "file", Msg: "cannot read sheet " + sheet, Err: err}
	}

	lo, hi, err := columnBounds(f)
	if err != nil {
		return nil, err
	}
	if len(rows) < f.HeaderRow {
		return nil, domain.ValidationError{Field: "file",
			Msg: fmt.Sprintf("sheet %q has %d rows, header expected on row %d", sheet, len(rows), f.HeaderRow)}
	}

	headerCells := rows[f.HeaderRow-1]
	headers := []string{}
	index := map[string]int{}
	for col := lo; col <= hi && col <= len(headerCells); col++ {
		h := strings.ToUpper(strings.TrimSpace(headerCells[col-1]))
		if h == "" {
			continue
		}
		headers = append(headers, h)
		if _, seen := index[h]; !seen {
			index[h] = col
		}
	}

	roleCol := map[Role]int{}
	missing := []string{}
	for _, c := range f.Columns {
		col, ok := index[c.Header]
		if !ok {
			if c.Required {
				missing = append(missing, c.Header)
			}
			continue
		}
		roleCol[c.Role] = col
	}
	if len(missing) > 0 {
		return nil, domain.ValidationError{Field: "columns",
			Msg: fmt.Sprintf("format %s: missing columns %s; columns found on row %d: %s",
				f.Name, strings.Join(missing, ", "), f.HeaderRow, strings.Join(headers, ", "))}
	}

	t := &Table{Format: f, Sheet: sheet, Headers: headers}
	for i := f.HeaderRow; i < len(rows); i++ {
		line := i + 1
		row := Row{Line: line, cells: map[Role]Cell{}}
		for role, col := range roleCol {
			var raw string
			if col <= len(rows[i]) {
				raw = rows[i][col-1]
			}
			row.cells[role] = readCell(wb, sheet, col, line, raw)
		}
		if row.blank() {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func pickSheet(wb *excelize.File, f Format) (string, error) {
	sheets := wb.GetSheetList()
	if f.Sheet == "" {
		if len(sheets) == 0 {
			return "", domain.ValidationError{Field: "file", Msg: "workbook has no sheets"}
		}
		return sheets[0], nil
	}
	for _, s := range sheets {
		if strings.EqualFold(strings.TrimSpace(s), f.Sheet) {
			return s, nil
		}
	}
	return "", domain.ValidationError{Field: "sheet",
		Msg: fmt.Sprintf("sheet %q not found; sheets in workbook: %s", f.Sheet, strings.Join(sheets, ", "))}
}

func columnBounds(f Format) (lo, hi int, err error) {
	lo, hi = 1, excelize.MaxColumns
	if f.FirstCol != "" {
		if lo, err = excelize.ColumnNameToNumber(f.FirstCol); err != nil {
			return 0, 0, err
		}
	}
	if f.LastCol != "" {
		if hi, err = excelize.ColumnNameToNumber(f.LastCol); err != nil {
			return 0, 0, err
		}
	}
	return lo, hi, nil
}

func readCell(wb *excelize.File, sheet string, col, line int, raw string) Cell {
	c := Cell{Text: raw}
	if strings.TrimSpace(raw) == "" {
		return c
	}
	name, err := excelize.CoordinatesToCellName(col, line)
	if err != nil {
		return c
	}
	typ, err := wb.GetCellType(sheet, name)
	if err != nil {
		return c
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeBool, excelize.CellTypeError:
		return c
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		c.Numeric = true
		c.Number = n
	}
	return c
}
