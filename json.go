package tabfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// readJSON parses a top-level array of objects or arrays. The first
// object's keys, in document order, become the header row; later objects
// are aligned by key, with missing keys read as null.
func readJSON(data []byte, _ Options) (*Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("json: expected a top-level array")
	}
	d := New()
	for dec.More() {
		if err := appendJSONElement(d, dec); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return d, nil
}

func writeJSON(w io.Writer, d *Dataset, _ Options) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range d.rows {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := encodeJSONRow(&buf, d.headers, row); err != nil {
			return err
		}
	}
	buf.WriteString("]\n")
	_, err := buf.WriteTo(w)
	return err
}

func detectJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return false
	}
	return json.Valid(trimmed)
}

// appendJSONElement decodes one array element, an object or an array, and
// appends it to d as a row.
func appendJSONElement(d *Dataset, dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return fmt.Errorf("json: row %d: expected an object or array", d.Height()+1)
	}
	switch delim {
	case '{':
		keys, values, err := decodeJSONObject(dec)
		if err != nil {
			return err
		}
		if d.headers == nil && d.Empty() {
			d.headers = keys
		}
		if len(d.headers) == 0 {
			return fmt.Errorf("json: row %d: object row in a headerless dataset", d.Height()+1)
		}
		row := make([]any, len(d.headers))
		for j, h := range d.headers {
			row[j] = values[h]
		}
		return d.Append(row)
	case '[':
		row, err := decodeJSONArray(dec)
		if err != nil {
			return err
		}
		return d.Append(row)
	default:
		return fmt.Errorf("json: row %d: unexpected %q", d.Height()+1, delim.String())
	}
}

// decodeJSONObject reads key/value pairs up to the closing brace, keeping
// the keys in document order.
func decodeJSONObject(dec *json.Decoder) ([]string, map[string]any, error) {
	var keys []string
	values := make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("json: object key is not a string")
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values[key] = normalizeJSON(v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

func decodeJSONArray(dec *json.Decoder) ([]any, error) {
	row := []any{}
	for dec.More() {
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		row = append(row, normalizeJSON(v))
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return row, nil
}

// normalizeJSON converts a decoded number into int64 when integral, float64
// otherwise. Other values pass through.
func normalizeJSON(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return string(n)
}

// encodeJSONRow writes one row: an object with keys in header order when
// headers exist, a plain array otherwise.
func encodeJSONRow(buf *bytes.Buffer, headers []string, row []any) error {
	if len(headers) == 0 {
		cells, err := json.Marshal(row)
		if err != nil {
			return err
		}
		buf.Write(cells)
		return nil
	}
	buf.WriteByte('{')
	for j, h := range headers {
		if j > 0 {
			buf.WriteString(", ")
		}
		key, err := json.Marshal(h)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteString(": ")
		var cell any
		if j < len(row) {
			cell = row[j]
		}
		val, err := json.Marshal(cell)
		if err != nil {
			return err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return nil
}
