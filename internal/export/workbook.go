package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookInfo describes the first sheet of a spreadsheet payload.
type WorkbookInfo struct {
	Sheet  string
	Header []string
	Rows   int
}

// InspectWorkbook reads an xlsx payload and reports its first sheet's header and
// data-row count.
func InspectWorkbook(data []byte) (*WorkbookInfo, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	info := &WorkbookInfo{Sheet: sheet}
	if len(rows) > 0 {
		info.Header = rows[0]
		info.Rows = len(rows) - 1
	}
	return info, nil
}

// headerMatches compares a workbook header with the expected display names.
// excelize drops trailing empty cells, so a shorter header only matches if the
// missing names are empty.
func headerMatches(got, want []string) bool {
	if len(got) > len(want) {
		return false
	}
	for i, name := range want {
		var g string
		if i < len(got) {
			g = got[i]
		}
		if g != name {
			return false
		}
	}
	return true
}
