package correlation

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gocollinear/dataset"
)

// Pair indexes one cell of a square matrix.
type Pair struct {
	Row, Col int
}

// LowerPairs returns the strict lower-triangle cells of an n x n matrix in
// row-major order: (1,0), (2,0), (2,1), (3,0), ...
// Each unordered pair of distinct indices appears exactly once.
func LowerPairs(n int) []Pair {
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			pairs = append(pairs, Pair{Row: i, Col: j})
		}
	}
	return pairs
}

// Matrix is a symmetric correlation matrix over named columns with a unit
// diagonal.
type Matrix struct {
	method Method
	names  []string
	index  map[string]int
	sym    *mat.SymDense
}

// NewMatrix returns an identity correlation matrix over names.
func NewMatrix(names []string, method Method) *Matrix {
	n := len(names)
	m := &Matrix{
		method: method,
		names:  append([]string(nil), names...),
		index:  make(map[string]int, n),
	}
	if n > 0 {
		m.sym = mat.NewSymDense(n, nil)
	}
	for i, name := range names {
		m.index[name] = i
		m.sym.SetSym(i, i, 1)
	}
	return m
}

// Compute builds the correlation matrix of every column of ds using method.
// Any pair whose coefficient is undefined fails the whole computation.
func Compute(ds *dataset.Dataset, method Method) (*Matrix, error) {
	fn, err := method.Func()
	if err != nil {
		return nil, err
	}
	n := ds.NumColumns()
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewColumns, n)
	}

	m := NewMatrix(ds.Names(), method)
	for _, p := range LowerPairs(n) {
		a, b := ds.ColumnAt(p.Row), ds.ColumnAt(p.Col)
		r, err := fn(a.Values, b.Values)
		if err != nil {
			return nil, &PairError{Method: method, X: b.Name, Y: a.Name, Err: err}
		}
		m.sym.SetSym(p.Row, p.Col, r)
	}
	return m, nil
}

// Method returns the statistic the matrix was computed with.
func (m *Matrix) Method() Method {
	return m.method
}

// Names returns the column names in matrix order.
func (m *Matrix) Names() []string {
	return append([]string(nil), m.names...)
}

// Name returns the column name at index i.
func (m *Matrix) Name(i int) string {
	return m.names[i]
}

// Dims returns the number of rows (and columns) of the matrix.
func (m *Matrix) Dims() int {
	return len(m.names)
}

// At returns the coefficient at (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.sym.At(i, j)
}

// Set stores r at (i, j) and (j, i).
func (m *Matrix) Set(i, j int, r float64) {
	m.sym.SetSym(i, j, r)
}

// Value returns the coefficient between the named columns.
func (m *Matrix) Value(a, b string) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", dataset.ErrColumnNotFound, a)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", dataset.ErrColumnNotFound, b)
	}
	return m.sym.At(i, j), nil
}

// Symmetric exposes the underlying gonum matrix.
func (m *Matrix) Symmetric() mat.Symmetric {
	return m.sym
}

// String formats the matrix with a header row of column names.
func (m *Matrix) String() string {
	if m.Dims() == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", strings.Join(m.names, "\t"))
	fmt.Fprintf(&b, "%.4f", mat.Formatted(m.sym, mat.Squeeze()))
	return b.String()
}

// PairError reports the column pair whose coefficient could not be computed.
type PairError struct {
	Method Method
	X, Y   string
	Err    error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("%s correlation of %q and %q: %v", e.Method, e.X, e.Y, e.Err)
}

func (e *PairError) Unwrap() error {
	return e.Err
}
