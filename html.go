package tabfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// readHTML extracts the first <table> element. A leading row made entirely
// of <th> cells becomes the header row; entities are decoded and cell text
// is trimmed.
func readHTML(data []byte, _ Options) (*Dataset, error) {
	z := html.NewTokenizer(bytes.NewReader(data))
	var (
		headers []string
		records [][]string
		row     []string
		cell    strings.Builder
		inTable bool
		inCell  bool
		done    bool
		allTH   bool
		nested  int
	)
	for !done {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			done = true
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "table":
				if inTable {
					nested++
				} else {
					inTable = true
				}
			case "tr":
				if inTable && nested == 0 {
					row = nil
					allTH = true
				}
			case "th":
				if inTable && nested == 0 {
					inCell = true
					cell.Reset()
				}
			case "td":
				if inTable && nested == 0 {
					inCell = true
					allTH = false
					cell.Reset()
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "table":
				if nested > 0 {
					nested--
				} else if inTable {
					done = true
				}
			case "tr":
				if inTable && nested == 0 && len(row) > 0 {
					if allTH && headers == nil && len(records) == 0 {
						headers = row
					} else {
						records = append(records, row)
					}
				}
			case "th", "td":
				if inCell {
					row = append(row, strings.TrimSpace(cell.String()))
					inCell = false
				}
			}
		case html.TextToken:
			if inCell {
				cell.Write(z.Text())
			}
		}
	}
	if !inTable {
		return nil, fmt.Errorf("html: no table found")
	}
	width := len(headers)
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	var d *Dataset
	if headers != nil {
		d = New(padRecord(headers, width)...)
	} else {
		d = New()
	}
	for _, rec := range records {
		if err := d.AppendRecord(padRecord(rec, width)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func writeHTML(w io.Writer, d *Dataset, _ Options) error {
	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}
	if headers := d.headers; len(headers) > 0 {
		if _, err := fmt.Fprintln(w, "  <thead>"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for _, col := range headers {
			if _, err := fmt.Fprintf(w, "      <th>%s</th>\n", html.EscapeString(col)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "  </thead>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, rec := range d.Records() {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for _, cell := range rec {
			if _, err := fmt.Fprintf(w, "      <td>%s</td>\n", html.EscapeString(cell)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func detectHTML(data []byte) bool {
	return bytes.Contains(bytes.ToLower(data), []byte("<table"))
}
