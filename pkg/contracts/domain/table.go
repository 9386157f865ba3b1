package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ValueKind identifies what a table cell holds.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindNumber
	KindText
	KindDate
)

// String returns the lowercase name of the kind
func (k ValueKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single cell of a record table. The zero Value is missing.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Time time.Time
}

// Missing returns the missing marker
func Missing() Value { return Value{} }

// Number wraps a float. NaN and infinities are stored as missing.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{Kind: KindNumber, Num: f}
}

// Text wraps a string
func Text(s string) Value { return Value{Kind: KindText, Str: s} }

// Date wraps a time. The zero time is stored as missing.
func Date(t time.Time) Value {
	if t.IsZero() {
		return Value{}
	}
	return Value{Kind: KindDate, Time: t}
}

// IsMissing reports whether v is the missing marker
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// Equal reports whether two values have the same kind and content
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindMissing:
		return true
	case KindNumber:
		return v.Num == o.Num
	case KindText:
		return v.Str == o.Str
	case KindDate:
		return v.Time.Equal(o.Time)
	}
	return false
}

// String renders the value the way the console preview and audit trail show it.
// Missing renders as "NaN", dates without a clock component as YYYY-MM-DD.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Str
	case KindDate:
		if v.Time.Hour() == 0 && v.Time.Minute() == 0 && v.Time.Second() == 0 && v.Time.Nanosecond() == 0 {
			return v.Time.Format("2006-01-02")
		}
		return v.Time.Format("2006-01-02 15:04:05")
	default:
		return "NaN"
	}
}

// Table is the in-memory record table: ordered column names and rows of cells.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]Value
}

// NewTable creates an empty table with the given header
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Len returns the number of rows
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of the named column, or -1 if absent
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// AppendRow adds a row. Short rows are padded with missing cells.
func (t *Table) AppendRow(row []Value) error {
	if len(row) > len(t.Columns) {
		return fmt.Errorf("row %d has %d fields, header has %d", len(t.Rows)+1, len(row), len(t.Columns))
	}
	cells := make([]Value, len(t.Columns))
	copy(cells, row)
	t.Rows = append(t.Rows, cells)
	return nil
}

// Column returns a copy of the named column's cells
func (t *Table) Column(name string) ([]Value, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// Head returns a table sharing the header and holding at most n leading rows
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	head := NewTable(t.Columns)
	head.Rows = t.Rows[:n]
	return head
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	c := NewTable(t.Columns)
	c.Rows = make([][]Value, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]Value, len(row))
		copy(cells, row)
		c.Rows[i] = cells
	}
	return c
}

// Records renders the table as strings with the header as the first record
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	header := make([]string, len(t.Columns))
	copy(header, t.Columns)
	records = append(records, header)
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = v.String()
		}
		records = append(records, rec)
	}
	return records
}

// ColumnCount pairs a column name with a count
type ColumnCount struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
}

// MissingCounts returns the number of missing cells per column, in column order
func (t *Table) MissingCounts() []ColumnCount {
	counts := make([]ColumnCount, len(t.Columns))
	for i, c := range t.Columns {
		counts[i].Column = c
	}
	for _, row := range t.Rows {
		for i, v := range row {
			if v.IsMissing() {
				counts[i].Count++
			}
		}
	}
	return counts
}
