package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/extrame/xls"
)

// extractXLS renders a legacy binary Excel workbook the same way extractExcel
// renders an XLSX one: one line per non-empty row, cells joined with " | ",
// and a separator line naming each sheet after the first in multi-sheet
// workbooks.
func extractXLS(data []byte) (string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return "", fmt.Errorf("opening workbook: %w", err)
	}

	count := wb.NumSheets()
	var b strings.Builder

	for i := 0; i < count; i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		if i > 0 && count > 1 {
			b.WriteString(fmt.Sprintf("\n--- %s ---\n", sheet.Name))
		}
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			line := joinCells(rowCells(row))
			if line == "" {
				continue
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

func rowCells(row *xls.Row) []string {
	first, last := row.FirstCol(), row.LastCol()
	if last <= first {
		return nil
	}
	cells := make([]string, 0, last-first)
	for c := first; c < last; c++ {
		cells = append(cells, row.Col(c))
	}
	return cells
}
