package tabfile

import (
	"bytes"

	"github.com/extrame/xls"
)

var xlsMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}

// readXLS reads the first worksheet of a legacy Excel workbook. The first
// row becomes the header row. There is no writer for this format.
func readXLS(data []byte, _ Options) (*Dataset, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return New(), nil
	}
	var records [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		rec := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			if j < row.FirstCol() {
				rec = append(rec, "")
			} else {
				rec = append(rec, row.Col(j))
			}
		}
		records = append(records, rec)
	}
	return fromRecords(records, true), nil
}

func detectXLS(data []byte) bool {
	return bytes.HasPrefix(data, xlsMagic)
}
