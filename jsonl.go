package tabfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// readJSONL parses line-delimited JSON: one object or array per line, blank
// lines skipped. Header handling matches the JSON reader.
func readJSONL(data []byte, _ Options) (*Dataset, error) {
	d := New()
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.UseNumber()
		if err := appendJSONElement(d, dec); err != nil {
			return nil, fmt.Errorf("jsonl: %w", err)
		}
	}
	return d, nil
}

func writeJSONL(w io.Writer, d *Dataset, _ Options) error {
	var buf bytes.Buffer
	for _, row := range d.rows {
		if err := encodeJSONRow(&buf, d.headers, row); err != nil {
			return err
		}
		buf.WriteByte('\n')
	}
	_, err := buf.WriteTo(w)
	return err
}

func detectJSONL(data []byte) bool {
	lines := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] != '{' && line[0] != '[' {
			return false
		}
		if !json.Valid(line) {
			return false
		}
		lines++
	}
	return lines > 0
}
