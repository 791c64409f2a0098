package tabular

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions selects the worksheet to read. SheetName wins over SheetIndex.
type XLSXOptions struct {
	SheetIndex int
	SheetName  string
}

// ReadWorksheet returns the rows of one worksheet as display strings.
// Trailing rows with no content are dropped.
func ReadWorksheet(path string, opts XLSXOptions) ([][]string, error) {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open workbook")
	}

	var sheet *xlsx.Sheet
	switch {
	case opts.SheetName != "":
		s, ok := wb.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: no worksheet named %q", opts.SheetName)
		}
		sheet = s
	case opts.SheetIndex < 0 || opts.SheetIndex >= len(wb.Sheets):
		return nil, eris.Errorf("xlsx: worksheet %d requested, workbook has %d", opts.SheetIndex, len(wb.Sheets))
	default:
		sheet = wb.Sheets[opts.SheetIndex]
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		if r == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			cells[i] = c.String()
		}
		rows = append(rows, cells)
	}

	for len(rows) > 0 && blank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
