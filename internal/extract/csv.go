package extract

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"salesinsights/internal/grid"
)

// delimiterCandidates are tried when sniffing the field separator, in
// preference order for ties.
var delimiterCandidates = []rune{',', ';', '\t'}

// readCSV parses delimited text into a grid. The delimiter is sniffed from
// the first non-empty line; ragged rows are tolerated since the grid
// normalizer handles them.
func (r *Reader) readCSV(src io.Reader) (grid.RawGrid, error) {
	buffered := bufio.NewReaderSize(src, 64*1024)
	first, err := peekLine(buffered)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	delim := sniffDelimiter(first)

	reader := csv.NewReader(buffered)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	r.logger.Debug("csv parsed",
		slog.String("delimiter", string(delim)),
		slog.Int("rows", len(records)),
	)
	return grid.FromStrings(records), nil
}

// peekLine returns the first line without consuming it.
func peekLine(r *bufio.Reader) (string, error) {
	buf, err := r.Peek(64 * 1024)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", err
	}
	s := string(buf)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return s, nil
}

func sniffDelimiter(line string) rune {
	best := delimiterCandidates[0]
	bestCount := -1
	for _, cand := range delimiterCandidates {
		if count := strings.Count(line, string(cand)); count > bestCount {
			best, bestCount = cand, count
		}
	}
	return best
}
