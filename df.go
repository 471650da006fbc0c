package tabfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// writeDF renders a dataframe-style preview: a leading zero-based index
// column, right-aligned cells, two-space gutters, no rules.
func writeDF(w io.Writer, d *Dataset, _ Options) error {
	records := d.Records()
	widths := recordWidths(d.headers, records)
	if len(widths) == 0 {
		return nil
	}
	idxWidth := 1
	if len(records) > 0 {
		idxWidth = len(strconv.Itoa(len(records) - 1))
	}
	if len(d.headers) > 0 {
		if err := writeDFRow(w, "", d.headers, idxWidth, widths); err != nil {
			return err
		}
	}
	for i, rec := range records {
		if err := writeDFRow(w, strconv.Itoa(i), rec, idxWidth, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeDFRow(w io.Writer, index string, cells []string, idxWidth int, widths []int) error {
	parts := make([]string, 0, len(widths)+1)
	parts = append(parts, padCellRight(index, idxWidth))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts = append(parts, padCellRight(cell, width))
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}
