package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/presencedash/models"
)

// ColumnType is the declared type of a dataset column
type ColumnType string

const (
	TypeString   ColumnType = "string"
	TypeNumber   ColumnType = "number"
	TypeDatetime ColumnType = "datetime"
)

type Column struct {
	Type  ColumnType
	Label string
}

// Cell is a value plus its display form. Formatted stays empty until a
// formatting pass runs over the column.
type Cell struct {
	Value     any
	Formatted string
}

// Dataset is the chart-side table an adapter builds from decoded rows.
// It belongs to the adapter call that built it.
type Dataset struct {
	Columns []Column
	Rows    [][]Cell
}

func NewDataset(columns ...Column) *Dataset {
	return &Dataset{Columns: columns}
}

// AddRow appends one row, checking each value against its column type
func (d *Dataset) AddRow(values ...any) error {
	if len(values) != len(d.Columns) {
		return fmt.Errorf("row has %d values, dataset has %d columns", len(values), len(d.Columns))
	}
	row := make([]Cell, len(values))
	for i, v := range values {
		if err := checkType(d.Columns[i].Type, v); err != nil {
			return fmt.Errorf("column %d (%s): %w", i, d.Columns[i].Label, err)
		}
		row[i] = Cell{Value: v}
	}
	d.Rows = append(d.Rows, row)
	return nil
}

func checkType(t ColumnType, v any) error {
	var ok bool
	switch t {
	case TypeString:
		_, ok = v.(string)
	case TypeNumber:
		_, ok = v.(float64)
	case TypeDatetime:
		_, ok = v.(time.Time)
	}
	if !ok {
		return fmt.Errorf("value %v (%T) is not a %s", v, v, t)
	}
	return nil
}

// FormatDateColumn fills the display form of every cell of a datetime column.
// pattern uses the HH:mm:ss notation.
func (d *Dataset) FormatDateColumn(col int, pattern string) error {
	if col < 0 || col >= len(d.Columns) {
		return fmt.Errorf("column %d out of range", col)
	}
	if d.Columns[col].Type != TypeDatetime {
		return fmt.Errorf("column %d (%s) is %s, not datetime", col, d.Columns[col].Label, d.Columns[col].Type)
	}
	layout := datePattern.Replace(pattern)
	for _, row := range d.Rows {
		row[col].Formatted = row[col].Value.(time.Time).Format(layout)
	}
	return nil
}

var datePattern = strings.NewReplacer("yyyy", "2006", "MM", "01", "dd", "02", "HH", "15", "mm", "04", "ss", "05")

// Text returns the display form of a cell
func (d *Dataset) Text(row, col int) string {
	c := d.Rows[row][col]
	if c.Formatted != "" {
		return c.Formatted
	}
	return fmt.Sprint(c.Value)
}

// Float returns a number cell, or a datetime cell as seconds past the
// reference midnight
func (d *Dataset) Float(row, col int) float64 {
	switch v := d.Rows[row][col].Value.(type) {
	case float64:
		return v
	case time.Time:
		return v.Sub(models.ReferenceDate()).Seconds()
	}
	return 0
}

// Labels returns column 0 of every row
func (d *Dataset) Labels() []string {
	labels := make([]string, len(d.Rows))
	for i := range d.Rows {
		labels[i] = d.Text(i, 0)
	}
	return labels
}

// ArrayToDataset builds a dataset straight from a table, header row included.
// The first column is typed string, the others number.
func ArrayToDataset(table models.Table) (*Dataset, error) {
	if len(table.Header) < 2 {
		return nil, fmt.Errorf("table needs a header with at least two columns, got %v", table.Header)
	}
	columns := make([]Column, len(table.Header))
	columns[0] = Column{Type: TypeString, Label: table.Header[0]}
	for i, label := range table.Header[1:] {
		columns[i+1] = Column{Type: TypeNumber, Label: label}
	}

	ds := NewDataset(columns...)
	for _, r := range table.Rows {
		values := []any{r.Label}
		for col := 1; col < len(columns); col++ {
			values = append(values, r.Value(col))
		}
		if err := ds.AddRow(values...); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
