// Package extract turns uploaded source files into raw, untyped grids. It
// owns format dispatch and table concatenation only; header detection and
// typing belong to the grid normalizer downstream.
package extract

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"salesinsights/internal/grid"
)

var (
	// ErrUnsupportedFormat rejects files by extension before any parsing
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoTables means the document parsed but contained no tables
	ErrNoTables = errors.New("no tables found in document")
)

// Reader dispatches uploaded files to the per-format extractors.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a file reader.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// Read extracts a raw grid from the named file's content. The extension is
// matched case-insensitively; unsupported extensions fail before a byte is
// parsed. Sources holding several tables (workbook sheets, PDF pages, HTML
// documents) are concatenated row-wise in document order.
func (r *Reader) Read(filename string, src io.Reader) (grid.RawGrid, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return r.readCSV(src)
	case ".xls", ".xlsx":
		return r.readWorkbook(src)
	case ".html", ".htm":
		return r.readHTML(src)
	case ".pdf":
		return r.readPDF(src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
