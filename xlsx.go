package tabfile

import (
	"bytes"
	"io"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// readXLSX reads one worksheet, the named one or the first, using the
// formatted cell values. The first row becomes the header row.
func readXLSX(data []byte, opts Options) (*Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := opts.String(OptionSheet, "")
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return New(), nil
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return fromRecords(rows, true), nil
}

func writeXLSX(w io.Writer, d *Dataset, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := opts.String(OptionSheet, "")
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return err
		}
	}
	rowIdx := 1
	if len(d.headers) > 0 {
		cells := make([]any, len(d.headers))
		for i, h := range d.headers {
			cells[i] = h
		}
		if err := setSheetRow(f, sheet, rowIdx, cells); err != nil {
			return err
		}
		rowIdx++
	}
	for _, row := range d.rows {
		cells := make([]any, len(row))
		copy(cells, row)
		if err := setSheetRow(f, sheet, rowIdx, cells); err != nil {
			return err
		}
		rowIdx++
	}
	_, err := f.WriteTo(w)
	return err
}

func setSheetRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func detectXLSX(data []byte) bool {
	return zipContains(data, "[Content_Types].xml") || zipContains(data, "xl/workbook.xml")
}
