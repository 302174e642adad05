package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// sheetNameLimit is the Excel-imposed maximum sheet name length.
const sheetNameLimit = 31

// WriteExcel writes the sheets into one workbook, in order. Sheet names are
// truncated to Excel's 31-character limit; the header row is bolded.
func WriteExcel(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, sheet := range sheets {
		name := sheet.Name
		if len(name) > sheetNameLimit {
			name = name[:sheetNameLimit]
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("create sheet %q: %w", name, err)
			}
		}

		if err := writeRow(f, name, 1, sheet.Headers); err != nil {
			return err
		}
		lastCol, err := excelize.ColumnNumberToName(max(len(sheet.Headers), 1))
		if err != nil {
			return fmt.Errorf("resolve header range: %w", err)
		}
		if err := f.SetCellStyle(name, "A1", lastCol+"1", headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}

		for r, row := range sheet.Rows {
			if err := writeRow(f, name, r+2, row); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// writeRow writes one row, storing numeric-looking cells as numbers so Excel
// treats exported aggregates as values rather than text.
func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		if v, err := strconv.ParseFloat(cell, 64); err == nil && cell != "" {
			values[i] = v
		} else {
			values[i] = cell
		}
	}
	addr, err := excelize.JoinCellName("A", rowNum)
	if err != nil {
		return fmt.Errorf("resolve cell address: %w", err)
	}
	if err := f.SetSheetRow(sheet, addr, &values); err != nil {
		return fmt.Errorf("write row %d of %q: %w", rowNum, sheet, err)
	}
	return nil
}
