// Package frame runs the pruner on qframe data frames.
package frame

import (
	"fmt"

	"github.com/tobgu/qframe"
	"github.com/tobgu/qframe/config/newqf"
	"github.com/tobgu/qframe/types"

	"github.com/sartorproj/gocollinear/correlation"
	"github.com/sartorproj/gocollinear/dataset"
	"github.com/sartorproj/gocollinear/prune"
)

// FromQFrame converts the float and int columns of f into a dataset,
// keeping column order. Any other column type is an error.
func FromQFrame(f qframe.QFrame) (*dataset.Dataset, error) {
	if f.Err != nil {
		return nil, f.Err
	}

	typeMap := f.ColumnTypeMap()
	names := f.ColumnNames()
	columns := make([]dataset.Column, 0, len(names))
	for _, name := range names {
		var values []float64
		switch typeMap[name] {
		case types.Float:
			view, err := f.FloatView(name)
			if err != nil {
				return nil, err
			}
			values = view.Slice()
		case types.Int:
			view, err := f.IntView(name)
			if err != nil {
				return nil, err
			}
			ints := view.Slice()
			values = make([]float64, len(ints))
			for i, v := range ints {
				values[i] = float64(v)
			}
		default:
			return nil, fmt.Errorf("%w: column %q has type %s", dataset.ErrNonNumeric, name, typeMap[name])
		}
		columns = append(columns, dataset.Column{Name: name, Values: values})
	}
	return dataset.New(columns...)
}

// ToQFrame converts a dataset into a qframe with float columns in dataset order.
func ToQFrame(ds *dataset.Dataset) qframe.QFrame {
	data := make(map[string]types.DataSlice, ds.NumColumns())
	for i := 0; i < ds.NumColumns(); i++ {
		c := ds.ColumnAt(i)
		values := make([]float64, c.Len())
		copy(values, c.Values)
		data[c.Name] = values
	}
	return qframe.New(data, newqf.ColumnOrder(ds.Names()...))
}

// Prune drops the later member of every column pair of f whose absolute
// correlation exceeds threshold. The returned frame keeps f's column types.
func Prune(f qframe.QFrame, method correlation.Method, threshold float64) (qframe.QFrame, error) {
	ds, err := FromQFrame(f)
	if err != nil {
		return qframe.QFrame{}, fmt.Errorf("%w: %w", prune.ErrInvalidInput, err)
	}

	analysis, err := prune.Analyze(ds, method, threshold)
	if err != nil {
		return qframe.QFrame{}, err
	}

	out := f.Drop(analysis.Dropped()...)
	if out.Err != nil {
		return qframe.QFrame{}, fmt.Errorf("%w: %w", prune.ErrPostcondition, out.Err)
	}
	return out, nil
}
