package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the cell variants. Missing is explicit so that a
// failed numeric coercion is never confused with zero.
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindNumber
	KindText
	KindHistogram
)

// Value is one spreadsheet cell after normalization.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
	Hist map[string]int
}

func Missing() Value         { return Value{Kind: KindMissing} }
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func Text(s string) Value    { return Value{Kind: KindText, Text: s} }
func Histogram(h map[string]int) Value {
	return Value{Kind: KindHistogram, Hist: h}
}

// Float returns the numeric value and whether the cell holds one.
func (v Value) Float() (float64, bool) {
	if v.Kind == KindNumber {
		return v.Num, true
	}
	return 0, false
}

// FloatOr returns the numeric value or def for non-numeric cells.
func (v Value) FloatOr(def float64) float64 {
	if v.Kind == KindNumber {
		return v.Num
	}
	return def
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindHistogram:
		parts := make([]string, 0, len(v.Hist))
		for k, n := range v.Hist {
			parts = append(parts, fmt.Sprintf("%s:%d", k, n))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// IsZero reports whether the cell is a numeric zero or missing.
func (v Value) IsZero() bool {
	return v.Kind == KindMissing || (v.Kind == KindNumber && v.Num == 0)
}

// Row is one observation keyed by column name.
type Row map[string]Value

// Clone returns a shallow copy safe for appending derived columns.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Dataset is a row-oriented table with a declared column order. The column
// order is what the report writer renders; the rows may carry extra derived
// columns that are only emitted if listed in Columns.
type Dataset struct {
	Columns []string
	Rows    []Row
}

func NewDataset(columns ...string) *Dataset {
	return &Dataset{Columns: columns}
}

func (d *Dataset) Len() int { return len(d.Rows) }

// HasColumn checks the declared column order, not the row maps.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the declared order if not already present.
func (d *Dataset) AddColumn(name string) {
	if !d.HasColumn(name) {
		d.Columns = append(d.Columns, name)
	}
}

// SumFloat totals a numeric column over all rows, treating missing as zero.
func (d *Dataset) SumFloat(col string) float64 {
	var total float64
	for _, r := range d.Rows {
		total += r[col].FloatOr(0)
	}
	return total
}
