package tabfile

import (
	"fmt"
	"io"
	"strings"
)

// writeMarkdown renders a GitHub-flavored Markdown table. A headerless
// dataset gets an empty header row, which renderers accept.
func writeMarkdown(w io.Writer, d *Dataset, _ Options) error {
	records := d.Records()
	widths := recordWidths(d.headers, records)
	if len(widths) == 0 {
		return nil
	}
	// Minimum width 3 keeps the separator row valid.
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}
	if err := writeMarkdownRow(w, d.headers, widths); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writeMarkdownRow(w, rec, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = padCell(cell, width)
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
