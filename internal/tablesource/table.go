// Package tablesource fetches raw tabular data for the registered datasets,
// either from local workbook files or from OneDrive through the graph client.
package tablesource

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/conectamos-mx/dashboard-ova/internal/dataset"
)

// Sentinel errors for the table source failure modes.
var (
	ErrWorkbookNotFound      = errors.New("tablesource: workbook file not found")
	ErrSheetNotFound         = errors.New("tablesource: sheet not found")
	ErrSheetLayout           = errors.New("tablesource: sheet layout unreadable")
	ErrDocumentNotConfigured = errors.New("tablesource: no document ID configured for workbook")
)

// Table is a rectangular view over one sheet: the header row's labels plus
// the data rows below it. Cells are the strings excelize renders; typed
// interpretation happens in the records package.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of the column whose trimmed label equals label,
// or -1 when absent.
func (t *Table) Index(label string) int {
	for i, col := range t.Columns {
		if strings.TrimSpace(col) == label {
			return i
		}
	}
	return -1
}

// IndexContaining returns the position of the first column whose label
// contains substr, or -1. Used for column families like EXISTENCIA where the
// sheet carries one column per unit.
func (t *Table) IndexContaining(substr string) int {
	for i, col := range t.Columns {
		if strings.Contains(col, substr) {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed cell at (row, col), or "" when the row is shorter
// than col. Excel omits trailing empty cells, so short rows are routine.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Clone returns a deep copy, so cached tables cannot be mutated by callers.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// sheetTable extracts ds.Sheet from an open workbook and slices it at the
// header row.
func sheetTable(f *excelize.File, ds dataset.Info) (*Table, error) {
	rows, err := f.GetRows(ds.Sheet)
	if err != nil {
		var notExist excelize.ErrSheetNotExist
		if errors.As(err, &notExist) {
			return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, ds.Sheet)
		}
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrSheetLayout, ds.Sheet, err)
	}

	if ds.HeaderRow >= len(rows) {
		return nil, fmt.Errorf("%w: sheet %q has %d rows, header expected at row %d",
			ErrSheetLayout, ds.Sheet, len(rows), ds.HeaderRow)
	}

	columns := make([]string, len(rows[ds.HeaderRow]))
	for i, c := range rows[ds.HeaderRow] {
		columns[i] = strings.TrimSpace(c)
	}

	return &Table{Columns: columns, Rows: rows[ds.HeaderRow+1:]}, nil
}

// parseWorkbook opens workbook bytes with excelize.
func parseWorkbook(data []byte) (*excelize.File, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSheetLayout, err)
	}
	return f, nil
}
