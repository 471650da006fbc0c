package tabfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// dBase III layout: a 32-byte file header, one 32-byte descriptor per
// field, a 0x0d terminator, then fixed-width records. Each record starts
// with a deletion flag byte (' ' live, '*' deleted) and the file ends with
// a 0x1a marker.
const (
	dbfVersion    = 0x03
	dbfHeaderSize = 32
	dbfFieldSize  = 32
)

type dbfField struct {
	name     string
	typ      byte
	length   int
	decimals int
}

func readDBF(data []byte, _ Options) (*Dataset, error) {
	if len(data) < dbfHeaderSize+1 {
		return nil, fmt.Errorf("dbf: truncated header")
	}
	recordCount := int(binary.LittleEndian.Uint32(data[4:8]))
	headerLen := int(binary.LittleEndian.Uint16(data[8:10]))
	recordLen := int(binary.LittleEndian.Uint16(data[10:12]))
	if headerLen < dbfHeaderSize+dbfFieldSize+1 || headerLen > len(data) || recordLen < 1 {
		return nil, fmt.Errorf("dbf: invalid header")
	}
	var fields []dbfField
	for off := dbfHeaderSize; off+dbfFieldSize <= headerLen-1; off += dbfFieldSize {
		if data[off] == 0x0d {
			break
		}
		desc := data[off : off+dbfFieldSize]
		fields = append(fields, dbfField{
			name:     string(bytes.TrimRight(desc[:11], "\x00")),
			typ:      desc[11],
			length:   int(desc[16]),
			decimals: int(desc[17]),
		})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("dbf: no field descriptors")
	}
	headers := make([]string, len(fields))
	for i, fd := range fields {
		headers[i] = fd.name
	}
	d := New(headers...)
	off := headerLen
	for n := 0; n < recordCount && off+recordLen <= len(data); n++ {
		rec := data[off : off+recordLen]
		off += recordLen
		if rec[0] == '*' {
			continue
		}
		row := make([]any, len(fields))
		pos := 1
		for i, fd := range fields {
			if pos+fd.length > len(rec) {
				return nil, fmt.Errorf("dbf: field %q overruns record", fd.name)
			}
			row[i] = dbfValue(fd, string(rec[pos:pos+fd.length]))
			pos += fd.length
		}
		if err := d.Append(row); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func dbfValue(fd dbfField, raw string) any {
	switch fd.typ {
	case 'N', 'F':
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	case 'L':
		switch strings.TrimSpace(raw) {
		case "Y", "y", "T", "t":
			return true
		case "N", "n", "F", "f":
			return false
		default:
			return nil
		}
	case 'D':
		return strings.TrimSpace(raw)
	default:
		return strings.TrimRight(raw, " ")
	}
}

// writeDBF writes a dBase III table. Column types are inferred: a column
// whose cells are all numbers becomes N, all booleans becomes L, anything
// else C. Field names are uppercased and truncated to ten bytes.
func writeDBF(w io.Writer, d *Dataset, _ Options) error {
	fields := dbfFields(d)
	headerLen := dbfHeaderSize + dbfFieldSize*len(fields) + 1
	recordLen := 1
	for _, fd := range fields {
		recordLen += fd.length
	}

	var buf bytes.Buffer
	hdr := make([]byte, dbfHeaderSize)
	hdr[0] = dbfVersion
	now := time.Now()
	hdr[1] = byte(now.Year() - 1900)
	hdr[2] = byte(now.Month())
	hdr[3] = byte(now.Day())
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(d.Height()))
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(headerLen))
	binary.LittleEndian.PutUint16(hdr[10:12], uint16(recordLen))
	buf.Write(hdr)

	for _, fd := range fields {
		desc := make([]byte, dbfFieldSize)
		copy(desc[:11], fd.name)
		desc[11] = fd.typ
		desc[16] = byte(fd.length)
		desc[17] = byte(fd.decimals)
		buf.Write(desc)
	}
	buf.WriteByte(0x0d)

	for _, row := range d.rows {
		buf.WriteByte(' ')
		for j, fd := range fields {
			var cell any
			if j < len(row) {
				cell = row[j]
			}
			buf.WriteString(dbfCell(cell, fd))
		}
	}
	buf.WriteByte(0x1a)
	_, err := buf.WriteTo(w)
	return err
}

func dbfFields(d *Dataset) []dbfField {
	width := d.Width()
	fields := make([]dbfField, width)
	for j := range width {
		name := fmt.Sprintf("FIELD%d", j+1)
		if j < len(d.headers) && d.headers[j] != "" {
			name = d.headers[j]
		}
		fd := dbfField{name: dbfFieldName(name), typ: dbfColumnType(d, j)}
		switch fd.typ {
		case 'L':
			fd.length = 1
		case 'N':
			maxInt, maxDec := 1, 0
			for _, row := range d.rows {
				s := cellString(row[j])
				if s == "" {
					continue
				}
				intLen := len(s)
				if dot := strings.IndexByte(s, '.'); dot >= 0 {
					intLen = dot
					if dec := len(s) - dot - 1; dec > maxDec {
						maxDec = dec
					}
				}
				if intLen > maxInt {
					maxInt = intLen
				}
			}
			fd.decimals = maxDec
			fd.length = maxInt
			if maxDec > 0 {
				fd.length += maxDec + 1
			}
			fd.length = min(fd.length, 254)
		default:
			maxLen := 1
			for _, row := range d.rows {
				if n := len(cellString(row[j])); n > maxLen {
					maxLen = n
				}
			}
			fd.length = min(maxLen, 254)
		}
		fields[j] = fd
	}
	return fields
}

func dbfColumnType(d *Dataset, j int) byte {
	sawNumber, sawBool, sawOther := false, false, false
	for _, row := range d.rows {
		if j >= len(row) {
			continue
		}
		switch row[j].(type) {
		case nil:
		case int64, float64:
			sawNumber = true
		case bool:
			sawBool = true
		default:
			sawOther = true
		}
	}
	switch {
	case sawOther, sawNumber && sawBool:
		return 'C'
	case sawBool:
		return 'L'
	case sawNumber:
		return 'N'
	default:
		return 'C'
	}
}

// dbfFieldName fits a header into the 10-byte field name slot: uppercased,
// spaces replaced, truncated.
func dbfFieldName(name string) string {
	name = strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	if len(name) > 10 {
		name = name[:10]
	}
	return name
}

func dbfCell(v any, fd dbfField) string {
	var s string
	switch fd.typ {
	case 'L':
		b, ok := v.(bool)
		if !ok {
			return "?"
		}
		if b {
			return "T"
		}
		return "F"
	case 'N':
		switch n := v.(type) {
		case int64:
			if fd.decimals > 0 {
				s = strconv.FormatFloat(float64(n), 'f', fd.decimals, 64)
			} else {
				s = strconv.FormatInt(n, 10)
			}
		case float64:
			s = strconv.FormatFloat(n, 'f', fd.decimals, 64)
		}
		if len(s) > fd.length {
			s = s[:fd.length]
		}
		return strings.Repeat(" ", fd.length-len(s)) + s
	default:
		s = cellString(v)
		if len(s) > fd.length {
			s = s[:fd.length]
		}
		return s + strings.Repeat(" ", fd.length-len(s))
	}
}

func detectDBF(data []byte) bool {
	if len(data) < dbfHeaderSize+1 {
		return false
	}
	switch data[0] {
	case 0x02, 0x03, 0x04, 0x83, 0x8b:
	default:
		return false
	}
	month, day := data[2], data[3]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	headerLen := int(binary.LittleEndian.Uint16(data[8:10]))
	recordLen := int(binary.LittleEndian.Uint16(data[10:12]))
	if headerLen < dbfHeaderSize+dbfFieldSize+1 || recordLen < 1 {
		return false
	}
	return (headerLen-dbfHeaderSize-1)%dbfFieldSize == 0
}
