package table

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind identifies the inferred value type of a column.
type Kind int

const (
	// KindNumeric holds float64 values, NaN marks a null cell
	KindNumeric Kind = iota
	// KindTime holds time.Time values, the zero time marks a null cell
	KindTime
	// KindText holds strings, the empty string marks a null cell
	KindText
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTime:
		return "time"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Column is a single named, typed column. Exactly one of the value slices is
// populated, selected by Kind.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Times   []time.Time
	Strings []string
}

// Numeric creates a numeric column. NaN entries are nulls.
func Numeric(name string, values []float64) Column {
	return Column{Name: name, Kind: KindNumeric, Floats: values}
}

// Text creates a textual column. Empty strings are nulls.
func Text(name string, values []string) Column {
	return Column{Name: name, Kind: KindText, Strings: values}
}

// TimeCol creates a temporal column. Zero times are nulls.
func TimeCol(name string, values []time.Time) Column {
	return Column{Name: name, Kind: KindTime, Times: values}
}

// Len returns the number of rows in the column
func (c Column) Len() int {
	switch c.Kind {
	case KindNumeric:
		return len(c.Floats)
	case KindTime:
		return len(c.Times)
	default:
		return len(c.Strings)
	}
}

// IsNull reports whether the cell at row i holds no value
func (c Column) IsNull(i int) bool {
	switch c.Kind {
	case KindNumeric:
		return math.IsNaN(c.Floats[i])
	case KindTime:
		return c.Times[i].IsZero()
	default:
		return c.Strings[i] == ""
	}
}

// ValueString renders the cell at row i for display, grouping keys and export.
// Null cells render as the empty string.
func (c Column) ValueString(i int) string {
	if c.IsNull(i) {
		return ""
	}
	switch c.Kind {
	case KindNumeric:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case KindTime:
		return c.Times[i].Format("2006-01-02")
	default:
		return c.Strings[i]
	}
}

// Table is an immutable rectangular collection of named, typed columns.
// Derived views (Select, Head, Melt) always allocate new value slices;
// a Table handed out is never mutated afterwards.
type Table struct {
	cols   []Column
	byName map[string]int
}

// New builds a table from the given columns. Column names must be unique and
// non-blank, and all columns must have the same length.
func New(cols ...Column) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(cols))}
	rows := -1
	for i, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("column %d has a blank name", i)
		}
		if _, dup := t.byName[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		if rows == -1 {
			rows = c.Len()
		} else if c.Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), rows)
		}
		t.byName[c.Name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// NumRows returns the row count (0 for a table with no columns)
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the column count
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Names returns the ordered column names
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// ColumnAt returns the column at index i
func (t *Table) ColumnAt(i int) Column {
	return t.cols[i]
}

// Fingerprint returns a stable content hash over the table's shape, column
// names, kinds and values. Used as the memoization cache key component.
func (t *Table) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(t.NumRows()))
	h.Write(buf[:])
	for _, c := range t.cols {
		h.Write([]byte(c.Name))
		h.Write([]byte{0, byte(c.Kind)})
		switch c.Kind {
		case KindNumeric:
			for _, v := range c.Floats {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
				h.Write(buf[:])
			}
		case KindTime:
			for _, v := range c.Times {
				binary.LittleEndian.PutUint64(buf[:], uint64(v.UnixNano()))
				h.Write(buf[:])
			}
		default:
			for _, v := range c.Strings {
				binary.LittleEndian.PutUint64(buf[:], uint64(len(v)))
				h.Write(buf[:])
				h.Write([]byte(v))
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
