package dataset

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
)

// Value is a raw cell value.
type Value struct {
	// Text is the cell content as displayed in the source file.
	Text string
	// Null marks a cell that is absent or explicitly null.
	Null bool
}

// Text returns a non-null Value.
func Text(s string) Value {
	return Value{Text: s}
}

// Null returns the absent/null Value.
func Null() Value {
	return Value{Null: true}
}

// IsEmpty reports whether the cell is null or the empty string.
func (v Value) IsEmpty() bool {
	return v.Null || v.Text == ""
}

// String returns the cell text; null cells render as the empty string.
func (v Value) String() string {
	return v.Text
}

// Row maps column names to cell values.
type Row map[string]Value

// Dataset is an immutable, in-memory table with a header row.
type Dataset struct {
	// Source names where the data was read from, if known.
	Source string
	// Sheet is the worksheet name for spreadsheet sources.
	Sheet string

	// Columns holds the header names in file order.
	Columns []string
	// Rows holds the data rows; indices are 0-based.
	Rows []Row

	index map[string]int
}

// FromRecords builds a Dataset from a header record and data records.
// Cells missing at the end of a short record are null; cells beyond the
// header are ignored. Blank header names become "Unnamed: <n>" and duplicate
// header names are an INPUT_ERROR.
func FromRecords(header []string, records [][]string) (*Dataset, error) {
	columns, err := normalizeHeader(header)
	if err != nil {
		return nil, err
	}

	d := &Dataset{
		Columns: columns,
		Rows:    make([]Row, 0, len(records)),
	}
	d.buildIndex()

	for i, rec := range records {
		if len(rec) > len(columns) && hasContent(rec[len(columns):]) {
			slog.Debug("ignoring cells outside the header",
				"row", i,
				"cells", len(rec)-len(columns))
		}

		row := make(Row, len(columns))
		for j, col := range columns {
			if j < len(rec) {
				row[col] = Text(rec[j])
			} else {
				row[col] = Null()
			}
		}
		d.Rows = append(d.Rows, row)
	}

	return d, nil
}

// New builds a Dataset from columns and already keyed rows. Columns absent
// from a row read as null.
func New(columns []string, rows []Row) (*Dataset, error) {
	cols, err := normalizeHeader(columns)
	if err != nil {
		return nil, err
	}
	d := &Dataset{Columns: cols, Rows: rows}
	d.buildIndex()
	return d, nil
}

func (d *Dataset) buildIndex() {
	d.index = make(map[string]int, len(d.Columns))
	for i, c := range d.Columns {
		d.index[c] = i
	}
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// HasColumn reports whether the header contains column.
func (d *Dataset) HasColumn(column string) bool {
	if d.index == nil {
		return slices.Contains(d.Columns, column)
	}
	_, ok := d.index[column]
	return ok
}

// Value returns the cell at row and column. Out of range rows and unknown
// columns read as null.
func (d *Dataset) Value(row int, column string) Value {
	if row < 0 || row >= len(d.Rows) {
		return Null()
	}
	v, ok := d.Rows[row][column]
	if !ok {
		return Null()
	}
	return v
}

func normalizeHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))

	for i, h := range header {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		if prev, dup := seen[h]; dup {
			return nil, ffverrors.WrapWithContext(ffverrors.ErrCodeInput,
				fmt.Sprintf("duplicate column %q at positions %d and %d", h, prev+1, i+1), nil,
				map[string]any{"column": h})
		}
		seen[h] = i
		columns[i] = h
	}

	return columns, nil
}

func hasContent(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return true
		}
	}
	return false
}
