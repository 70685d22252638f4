package models

import "time"

// Row is one positional record returned by the analysis API.
// Column 0 is the label, column i (i >= 1) is Values[i-1].
// Times holds the time-of-day rewrite of a column once NormalizeTimes ran on it.
type Row struct {
	Label  string
	Values []float64
	Times  []time.Time
}

// NewRow builds a row from a label and its numeric columns
func NewRow(label string, values ...float64) Row {
	return Row{Label: label, Values: values}
}

// Value returns the numeric value of a positional column, 0 when absent
func (r Row) Value(column int) float64 {
	i := column - 1
	if i < 0 || i >= len(r.Values) {
		return 0
	}
	return r.Values[i]
}

// Time returns the time-of-day of a positional column and whether it was normalized
func (r Row) Time(column int) (time.Time, bool) {
	i := column - 1
	if i < 0 || i >= len(r.Times) || r.Times[i].IsZero() {
		return time.Time{}, false
	}
	return r.Times[i], true
}

// Table is a decoded response: an optional header row kept apart from the data rows
type Table struct {
	Header []string
	Rows   []Row
}
