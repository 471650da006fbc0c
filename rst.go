package tabfile

import (
	"io"
	"strings"
)

// writeRST renders a reStructuredText simple table: columns separated by
// two spaces, "=" rules above and below the header and at the bottom.
func writeRST(w io.Writer, d *Dataset, _ Options) error {
	records := d.Records()
	widths := recordWidths(d.headers, records)
	if len(widths) == 0 {
		return nil
	}
	rule := rstRule(widths)
	var sb strings.Builder
	sb.WriteString(rule)
	if len(d.headers) > 0 {
		sb.WriteString(rstRow(d.headers, widths))
		sb.WriteString(rule)
	}
	for _, rec := range records {
		sb.WriteString(rstRow(rec, widths))
	}
	if len(records) > 0 {
		sb.WriteString(rule)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func rstRule(widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("=", width)
	}
	return strings.Join(parts, "  ") + "\n"
}

func rstRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = padCell(cell, width)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ") + "\n"
}
