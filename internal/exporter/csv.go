package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVOptions configures CSV writing behavior
type CSVOptions struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding,
	// which matters for the Arabic column names these exports carry.
	BOMPrefix bool
}

// WriteCSV writes one sheet as CSV.
func WriteCSV(w io.Writer, sheet Sheet, options CSVOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if len(sheet.Headers) > 0 {
		if err := writer.Write(sheet.Headers); err != nil {
			return fmt.Errorf("write headers: %w", err)
		}
	}
	for i, row := range sheet.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
