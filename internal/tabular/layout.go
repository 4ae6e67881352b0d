package tabular

import (
	"errors"
	"fmt"
	"time"
)

// Field is a named value the service reads from a vendor row
type Field string

const (
	Symbol    Field = "symbol"
	Name      Field = "name"
	Exchange  Field = "exchange"
	Price     Field = "price"
	RefPrice  Field = "ref_price"
	Change    Field = "change"
	PctChange Field = "pct_change"
	Volume    Field = "volume"
	High      Field = "high"
	Low       Field = "low"
	Open      Field = "open"
	Close     Field = "close"
	Time      Field = "time"
)

// ErrNoLayout is returned by Detect when no layout matches the sample
var ErrNoLayout = errors.New("no known column layout matches the response")

// Layout maps fields to candidate column names in priority order
type Layout struct {
	Name     string
	Columns  map[Field][]string
	Required []Field
}

// Column returns the first candidate column present in row
func (l *Layout) Column(row Row, f Field) (string, bool) {
	for _, col := range l.Columns[f] {
		if row.Has(col) {
			return col, true
		}
	}
	return "", false
}

// Matches reports whether row carries every required field
func (l *Layout) Matches(row Row) bool {
	for _, f := range l.Required {
		if _, ok := l.Column(row, f); !ok {
			return false
		}
	}
	return true
}

// Detect returns the first layout whose required fields are present in the
// first non-empty row of the sample
func Detect(rows []Row, layouts ...*Layout) (*Layout, error) {
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		for _, l := range layouts {
			if l.Matches(row) {
				return l, nil
			}
		}
		return nil, fmt.Errorf("%w: columns %v", ErrNoLayout, keys(row))
	}
	return nil, fmt.Errorf("%w: empty sample", ErrNoLayout)
}

// String reads a field as text; absent fields yield ""
func (l *Layout) String(row Row, f Field) string {
	for _, col := range l.Columns[f] {
		if s, ok := toString(row[col]); ok {
			return s
		}
	}
	return ""
}

// Float reads a field as a number; absent or unparseable fields yield 0
func (l *Layout) Float(row Row, f Field) float64 {
	v, _ := l.FloatOK(row, f)
	return v
}

// FloatOK is Float that also reports whether a usable value was found
func (l *Layout) FloatOK(row Row, f Field) (float64, bool) {
	for _, col := range l.Columns[f] {
		if v, ok := toFloat(row[col]); ok {
			return v, true
		}
	}
	return 0, false
}

// Int reads a field as an integer; absent or unparseable fields yield 0
func (l *Layout) Int(row Row, f Field) int64 {
	return int64(l.Float(row, f))
}

// Time reads a field as a timestamp; absent fields yield the zero time
func (l *Layout) Time(row Row, f Field) time.Time {
	for _, col := range l.Columns[f] {
		if t, ok := toTime(row[col]); ok {
			return t
		}
	}
	return time.Time{}
}

func keys(row Row) []string {
	out := make([]string, 0, len(row))
	for k := range row {
		out = append(out, k)
	}
	return out
}
