package tabfile

import (
	"io"
	"strings"
)

// writeJira renders Jira table markup: "||" fenced header cells and "|"
// fenced data cells.
func writeJira(w io.Writer, d *Dataset, _ Options) error {
	var sb strings.Builder
	if len(d.headers) > 0 {
		cells := make([]string, len(d.headers))
		for i, h := range d.headers {
			cells[i] = jiraCell(h)
		}
		sb.WriteString("||" + strings.Join(cells, "||") + "||\n")
	}
	for _, rec := range d.Records() {
		cells := make([]string, len(rec))
		for i, cell := range rec {
			cells[i] = jiraCell(cell)
		}
		sb.WriteString("|" + strings.Join(cells, "|") + "|\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// jiraCell keeps empty cells visible so the row markup stays parseable.
func jiraCell(s string) string {
	if s == "" {
		return " "
	}
	return s
}
