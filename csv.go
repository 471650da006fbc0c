package tabfile

import (
	"bytes"
	"encoding/csv"
	"io"
)

func readCSV(data []byte, opts Options) (*Dataset, error) {
	return readDelimited(data, opts.Rune(OptionDelimiter, ','), opts.Bool(OptionHeaders, true))
}

func writeCSV(w io.Writer, d *Dataset, opts Options) error {
	return writeDelimited(w, d, opts.Rune(OptionDelimiter, ','))
}

func detectCSV(data []byte) bool {
	return detectDelimited(data, ',')
}

// readDelimited parses delimiter-separated records. Ragged rows are padded
// to the widest one. When hasHeaders is true the first record becomes the
// header row.
func readDelimited(data []byte, comma rune, hasHeaders bool) (*Dataset, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRecords(records, hasHeaders), nil
}

func writeDelimited(w io.Writer, d *Dataset, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if headers := d.Headers(); headers != nil {
		if err := cw.Write(headers); err != nil {
			return err
		}
	}
	for _, rec := range d.Records() {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// detectDelimited reports whether data parses as a consistent delimited
// table with at least two columns.
func detectDelimited(data []byte, comma rune) bool {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return false
	}
	return len(records[0]) >= 2
}
