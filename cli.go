package tabfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// writeCLI renders the fixed-width console table: cells padded to the
// column width and joined by "|", with a dash rule under the header row.
// Trailing padding is trimmed from each line.
func writeCLI(w io.Writer, d *Dataset, _ Options) error {
	records := d.Records()
	widths := recordWidths(d.headers, records)
	if len(widths) == 0 {
		return nil
	}
	if len(d.headers) > 0 {
		if err := writeCLIRow(w, d.headers, widths); err != nil {
			return err
		}
		rule := make([]string, len(widths))
		for i, width := range widths {
			rule[i] = strings.Repeat("-", width)
		}
		if _, err := fmt.Fprintln(w, strings.Join(rule, "|")); err != nil {
			return err
		}
	}
	for _, rec := range records {
		if err := writeCLIRow(w, rec, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeCLIRow(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = padCell(cell, width)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "|"), " "))
	return err
}

// recordWidths returns per-column display widths over headers and records.
func recordWidths(headers []string, records [][]string) []int {
	n := len(headers)
	for _, rec := range records {
		if len(rec) > n {
			n = len(rec)
		}
	}
	widths := make([]int, n)
	for i, h := range headers {
		if w := runewidth.StringWidth(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, rec := range records {
		for i, cell := range rec {
			if w := runewidth.StringWidth(cell); i < n && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// padCell left-aligns s in a field of the given display width.
func padCell(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// padCellRight right-aligns s in a field of the given display width.
func padCellRight(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
