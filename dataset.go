package tabfile

import (
	"fmt"
	"strconv"
)

// Dataset is an in-memory table: ordered rows of cells with an optional
// header row. Cell values are nil, string, bool, int64, or float64; loaders
// normalize other widths before appending.
type Dataset struct {
	headers []string
	rows    [][]any
}

// New returns an empty Dataset with the given headers.
func New(headers ...string) *Dataset {
	return &Dataset{headers: headers}
}

// Headers returns a copy of the header row, or nil when the dataset has none.
func (d *Dataset) Headers() []string {
	if d.headers == nil {
		return nil
	}
	out := make([]string, len(d.headers))
	copy(out, d.headers)
	return out
}

// SetHeaders replaces the header row. The new width must match any existing
// rows. A nil slice removes the headers.
func (d *Dataset) SetHeaders(headers []string) error {
	if headers != nil && len(d.rows) > 0 && len(headers) != len(d.rows[0]) {
		return fmt.Errorf("%w: %d headers for %d columns", ErrInvalidDimensions, len(headers), len(d.rows[0]))
	}
	d.headers = headers
	return nil
}

// Append adds a data row. Its width must match the dataset width.
func (d *Dataset) Append(row []any) error {
	if w := d.Width(); w > 0 && len(row) != w {
		return fmt.Errorf("%w: row has %d cells, want %d", ErrInvalidDimensions, len(row), w)
	}
	d.rows = append(d.rows, row)
	return nil
}

// AppendRecord adds a data row of plain strings.
func (d *Dataset) AppendRecord(record []string) error {
	row := make([]any, len(record))
	for i, cell := range record {
		row[i] = cell
	}
	return d.Append(row)
}

// Height returns the number of data rows.
func (d *Dataset) Height() int { return len(d.rows) }

// Width returns the number of columns.
func (d *Dataset) Width() int {
	if len(d.headers) > 0 {
		return len(d.headers)
	}
	if len(d.rows) > 0 {
		return len(d.rows[0])
	}
	return 0
}

// Empty reports whether the dataset has no data rows.
func (d *Dataset) Empty() bool { return len(d.rows) == 0 }

// Row returns a copy of data row i.
func (d *Dataset) Row(i int) []any {
	out := make([]any, len(d.rows[i]))
	copy(out, d.rows[i])
	return out
}

// Records returns all data rows stringified, headers excluded.
func (d *Dataset) Records() [][]string {
	out := make([][]string, len(d.rows))
	for i, row := range d.rows {
		rec := make([]string, len(row))
		for j, cell := range row {
			rec[j] = cellString(cell)
		}
		out[i] = rec
	}
	return out
}

// cellString renders a single cell for text output.
func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case bool:
		return strconv.FormatBool(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", c)
	}
}

// fromRecords builds a Dataset from string records, padding ragged rows to
// the widest one. When hasHeaders is true the first record becomes the
// header row.
func fromRecords(records [][]string, hasHeaders bool) *Dataset {
	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	d := New()
	start := 0
	if hasHeaders && len(records) > 0 {
		d.headers = padRecord(records[0], width)
		start = 1
	}
	for _, rec := range records[start:] {
		row := make([]any, width)
		for i := range width {
			if i < len(rec) {
				row[i] = rec[i]
			} else {
				row[i] = ""
			}
		}
		d.rows = append(d.rows, row)
	}
	return d
}

// padRecord extends rec with empty cells up to width.
func padRecord(rec []string, width int) []string {
	out := make([]string, width)
	copy(out, rec)
	return out
}
