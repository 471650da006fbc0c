package tabfile

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const odsMimetype = "application/vnd.oasis.opendocument.spreadsheet"

const odsManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2">
 <manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.spreadsheet"/>
 <manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
 <manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>
</manifest:manifest>
`

const odsStyles = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" office:version="1.2"/>
`

// readODS reads the first table of an OpenDocument spreadsheet. The first
// row becomes the header row. Typed cells are recovered from the office
// value attributes; repeated empty cells and rows are dropped at the tail.
func readODS(data []byte, _ Options) (*Dataset, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	var content *zip.File
	for _, f := range zr.File {
		if f.Name == "content.xml" {
			content = f
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("ods: missing content.xml")
	}
	rc, err := content.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return parseODSContent(rc)
}

func parseODSContent(r io.Reader) (*Dataset, error) {
	dec := xml.NewDecoder(r)
	var (
		records      [][]any
		row          []any
		text         strings.Builder
		cellValue    any
		cellTyped    bool
		cellRepeat   int
		rowRepeat    int
		pendingCells int
		pendingRows  int
		nested       int
		inTable      bool
		inCell       bool
		inP          bool
		done         bool
	)
	for !done {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "table":
				if inTable {
					nested++
				} else {
					inTable = true
				}
			case "table-row":
				if inTable && nested == 0 {
					row = nil
					pendingCells = 0
					rowRepeat = attrInt(t, "number-rows-repeated", 1)
				}
			case "table-cell", "covered-table-cell":
				if inTable && nested == 0 {
					inCell = true
					text.Reset()
					cellRepeat = attrInt(t, "number-columns-repeated", 1)
					cellValue, cellTyped = odsTypedValue(t)
				}
			case "p":
				if inCell {
					if text.Len() > 0 {
						text.WriteByte('\n')
					}
					inP = true
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "table":
				if nested > 0 {
					nested--
				} else if inTable {
					done = true
				}
			case "table-row":
				if inTable && nested == 0 {
					if len(row) > 0 {
						for ; pendingRows > 0; pendingRows-- {
							records = append(records, nil)
						}
						for n := 0; n < rowRepeat; n++ {
							records = append(records, row)
						}
					} else {
						pendingRows += rowRepeat
					}
				}
			case "table-cell", "covered-table-cell":
				if inCell {
					inCell = false
					var v any
					if cellTyped {
						v = cellValue
					} else if s := text.String(); s != "" {
						v = s
					}
					if v == nil {
						pendingCells += cellRepeat
					} else {
						for ; pendingCells > 0; pendingCells-- {
							row = append(row, nil)
						}
						for n := 0; n < cellRepeat; n++ {
							row = append(row, v)
						}
					}
				}
			case "p":
				inP = false
			}
		case xml.CharData:
			if inP {
				text.Write(t)
			}
		}
	}
	if len(records) == 0 {
		return New(), nil
	}
	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	headers := make([]string, width)
	for i, cell := range records[0] {
		headers[i] = cellString(cell)
	}
	d := New(headers...)
	for _, rec := range records[1:] {
		padded := make([]any, width)
		copy(padded, rec)
		if err := d.Append(padded); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// odsTypedValue extracts a cell value from the office value attributes. The
// second return reports whether the attributes supplied the value; when
// false the cell text is used instead.
func odsTypedValue(el xml.StartElement) (any, bool) {
	switch attrValue(el, "value-type") {
	case "float", "currency", "percentage":
		s := attrValue(el, "value")
		if s == "" {
			return nil, false
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		return s, true
	case "boolean":
		return attrValue(el, "boolean-value") == "true", true
	case "date":
		if s := attrValue(el, "date-value"); s != "" {
			return s, true
		}
		return nil, false
	case "time":
		if s := attrValue(el, "time-value"); s != "" {
			return s, true
		}
		return nil, false
	case "string":
		if s := attrValue(el, "string-value"); s != "" {
			return s, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func attrValue(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func attrInt(el xml.StartElement, local string, def int) int {
	s := attrValue(el, local)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// writeODS writes a minimal OpenDocument spreadsheet: the mimetype entry
// first and uncompressed, then the manifest, styles, and content parts.
func writeODS(w io.Writer, d *Dataset, _ Options) error {
	zw := zip.NewWriter(w)
	mt, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err := mt.Write([]byte(odsMimetype)); err != nil {
		return err
	}
	manifest, err := zw.Create("META-INF/manifest.xml")
	if err != nil {
		return err
	}
	if _, err := io.WriteString(manifest, odsManifest); err != nil {
		return err
	}
	styles, err := zw.Create("styles.xml")
	if err != nil {
		return err
	}
	if _, err := io.WriteString(styles, odsStyles); err != nil {
		return err
	}
	content, err := zw.Create("content.xml")
	if err != nil {
		return err
	}
	if err := writeODSContent(content, d); err != nil {
		return err
	}
	return zw.Close()
}

func writeODSContent(w io.Writer, d *Dataset) error {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" office:version="1.2">`)
	sb.WriteString("<office:body><office:spreadsheet>")
	sb.WriteString(`<table:table table:name="` + defaultSheet + `">`)
	if len(d.headers) > 0 {
		sb.WriteString("<table:table-row>")
		for _, h := range d.headers {
			writeODSCell(&sb, h)
		}
		sb.WriteString("</table:table-row>")
	}
	for _, row := range d.rows {
		sb.WriteString("<table:table-row>")
		for _, cell := range row {
			writeODSCell(&sb, cell)
		}
		sb.WriteString("</table:table-row>")
	}
	sb.WriteString("</table:table></office:spreadsheet></office:body></office:document-content>")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeODSCell(sb *strings.Builder, v any) {
	switch c := v.(type) {
	case nil:
		sb.WriteString("<table:table-cell/>")
	case bool:
		s := strconv.FormatBool(c)
		sb.WriteString(`<table:table-cell office:value-type="boolean" office:boolean-value="`)
		sb.WriteString(s)
		sb.WriteString(`"><text:p>`)
		sb.WriteString(s)
		sb.WriteString("</text:p></table:table-cell>")
	case int64:
		writeODSNumber(sb, strconv.FormatInt(c, 10))
	case float64:
		writeODSNumber(sb, strconv.FormatFloat(c, 'f', -1, 64))
	default:
		sb.WriteString(`<table:table-cell office:value-type="string"><text:p>`)
		sb.WriteString(xmlEscape(cellString(v)))
		sb.WriteString("</text:p></table:table-cell>")
	}
}

func writeODSNumber(sb *strings.Builder, num string) {
	sb.WriteString(`<table:table-cell office:value-type="float" office:value="`)
	sb.WriteString(num)
	sb.WriteString(`"><text:p>`)
	sb.WriteString(num)
	sb.WriteString("</text:p></table:table-cell>")
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// detectODS checks the uncompressed mimetype entry an OpenDocument archive
// must carry.
func detectODS(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return false
		}
		mt, err := io.ReadAll(rc)
		rc.Close()
		return err == nil && string(mt) == odsMimetype
	}
	return false
}
