package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractExcel renders every sheet as text: one line per non-empty row, cells
// joined with " | ". Workbooks with more than one sheet get a separator line
// naming each sheet after the first. Output is deterministic: sheets and rows
// in stored order.
func extractExcel(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	var b strings.Builder

	for i, sheet := range sheets {
		if i > 0 && len(sheets) > 1 {
			b.WriteString(fmt.Sprintf("\n--- %s ---\n", sheet))
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			line := joinCells(row)
			if line == "" {
				continue
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

func joinCells(row []string) string {
	cells := make([]string, 0, len(row))
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return strings.Join(cells, " | ")
}
