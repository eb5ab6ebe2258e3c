// Package dataset provides the named-column numeric table used by the pruner.
package dataset

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrRaggedColumns is returned when columns differ in length.
	ErrRaggedColumns = errors.New("columns must have the same length")
)

// Column is a named sequence of numeric values. Missing values are NaN.
type Column struct {
	Name   string
	Values []float64
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	return len(c.Values)
}

// MissingCount returns the number of NaN values in the column.
func (c Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Observed returns the non-missing values of the column.
func (c Column) Observed() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean calculates the arithmetic mean of the observed values.
func (c Column) Mean() float64 {
	obs := c.Observed()
	if len(obs) == 0 {
		return math.NaN()
	}
	return stat.Mean(obs, nil)
}

// Variance calculates the sample variance of the observed values.
func (c Column) Variance() float64 {
	obs := c.Observed()
	if len(obs) < 2 {
		return 0
	}
	return stat.Variance(obs, nil)
}

// Std calculates the sample standard deviation of the observed values.
func (c Column) Std() float64 {
	return math.Sqrt(c.Variance())
}

// Dataset is an ordered collection of equally long named columns.
// Column order is significant and is preserved by every operation.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New creates a dataset from columns. Values are copied.
func New(columns ...Column) (*Dataset, error) {
	ds := &Dataset{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if i == 0 {
			ds.rows = c.Len()
		} else if c.Len() != ds.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, expected %d", ErrRaggedColumns, c.Name, c.Len(), ds.rows)
		}
		if _, ok := ds.index[c.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		values := make([]float64, c.Len())
		copy(values, c.Values)
		ds.index[c.Name] = len(ds.columns)
		ds.columns = append(ds.columns, Column{Name: c.Name, Values: values})
	}
	return ds, nil
}

// FromRows builds a dataset from row-major data and column names.
func FromRows(names []string, rows [][]float64) (*Dataset, error) {
	columns := make([]Column, len(names))
	for j, name := range names {
		columns[j] = Column{Name: name, Values: make([]float64, len(rows))}
	}
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d", ErrRaggedColumns, i, len(row), len(names))
		}
		for j, v := range row {
			columns[j].Values[i] = v
		}
	}
	return New(columns...)
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	return d.rows
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int {
	return len(d.columns)
}

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (d *Dataset) Index(name string) int {
	if i, ok := d.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the named column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// ColumnAt returns the column at position i. The returned values are shared
// with the dataset and must not be modified.
func (d *Dataset) ColumnAt(i int) Column {
	return d.columns[i]
}

// Column returns the named column.
func (d *Dataset) Column(name string) (Column, error) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return d.columns[i], nil
}

// Values returns a copy of the named column's values.
func (d *Dataset) Values(name string) ([]float64, error) {
	c, err := d.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, c.Len())
	copy(out, c.Values)
	return out, nil
}

// Row returns a copy of row i across all columns.
func (d *Dataset) Row(i int) []float64 {
	row := make([]float64, len(d.columns))
	for j, c := range d.columns {
		row[j] = c.Values[i]
	}
	return row
}

// Copy creates a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	out, _ := New(d.columns...)
	return out
}

// Drop returns a new dataset without the named columns. Every name must
// exist; repeated names are removed once. The receiver is not modified.
func (d *Dataset) Drop(names ...string) (*Dataset, error) {
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		if !d.Has(name) {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		drop[name] = struct{}{}
	}

	kept := make([]Column, 0, len(d.columns)-len(drop))
	for _, c := range d.columns {
		if _, ok := drop[c.Name]; ok {
			continue
		}
		kept = append(kept, c)
	}
	out, err := New(kept...)
	if err != nil {
		return nil, err
	}
	// Dropping every column must still report the original row count.
	out.rows = d.rows
	return out, nil
}

// Select returns a new dataset with only the named columns, in the given order.
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, err := d.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	out.rows = d.rows
	return out, nil
}
