package model

import (
	"strconv"
	"time"
)

// ColumnType identifies the primitive type of a dataset column.
type ColumnType string

const (
	ColumnTypeInteger  ColumnType = "integer"
	ColumnTypeFloat    ColumnType = "float"
	ColumnTypeString   ColumnType = "string"
	ColumnTypeBoolean  ColumnType = "boolean"
	ColumnTypeDatetime ColumnType = "datetime"
)

// ColumnTypes lists all supported column types in their cycling order.
var ColumnTypes = []ColumnType{
	ColumnTypeInteger,
	ColumnTypeFloat,
	ColumnTypeString,
	ColumnTypeBoolean,
	ColumnTypeDatetime,
}

// TimeLayout is the canonical text rendering for datetime cells.
const TimeLayout = time.RFC3339

// Column holds a single typed column of a Dataset.
// Only the value slice matching Type is populated.
type Column struct {
	Name    string
	Type    ColumnType
	Ints    []int64
	Floats  []float64
	Strings []string
	Bools   []bool
	Times   []time.Time
}

// Len returns the number of values stored in the column.
func (c *Column) Len() int {
	switch c.Type {
	case ColumnTypeInteger:
		return len(c.Ints)
	case ColumnTypeFloat:
		return len(c.Floats)
	case ColumnTypeString:
		return len(c.Strings)
	case ColumnTypeBoolean:
		return len(c.Bools)
	case ColumnTypeDatetime:
		return len(c.Times)
	default:
		return 0
	}
}

// Value returns the value at row i as an untyped interface.
func (c *Column) Value(i int) interface{} {
	switch c.Type {
	case ColumnTypeInteger:
		return c.Ints[i]
	case ColumnTypeFloat:
		return c.Floats[i]
	case ColumnTypeString:
		return c.Strings[i]
	case ColumnTypeBoolean:
		return c.Bools[i]
	case ColumnTypeDatetime:
		return c.Times[i]
	default:
		return nil
	}
}

// Text renders the value at row i as text for line-oriented formats.
func (c *Column) Text(i int) string {
	switch c.Type {
	case ColumnTypeInteger:
		return strconv.FormatInt(c.Ints[i], 10)
	case ColumnTypeFloat:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case ColumnTypeString:
		return c.Strings[i]
	case ColumnTypeBoolean:
		return strconv.FormatBool(c.Bools[i])
	case ColumnTypeDatetime:
		return c.Times[i].Format(TimeLayout)
	default:
		return ""
	}
}

// Dataset is an in-memory table with a fixed schema. It is created once per
// run and shared read-only across all trials; no trial mutates it.
type Dataset struct {
	Name    string
	Columns []Column
	Rows    int
}

// ColumnNames returns the column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i := range d.Columns {
		names[i] = d.Columns[i].Name
	}
	return names
}

// NumColumns returns the number of columns in the dataset.
func (d *Dataset) NumColumns() int {
	return len(d.Columns)
}
