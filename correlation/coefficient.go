package correlation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooFewColumns is returned when a matrix is requested for fewer than two columns.
	ErrTooFewColumns = errors.New("correlation requires at least two columns")
	// ErrInsufficientData is returned when fewer than two rows are observed in both columns.
	ErrInsufficientData = errors.New("fewer than two complete observations")
	// ErrConstantColumn is returned when a column has zero variance, leaving the coefficient undefined.
	ErrConstantColumn = errors.New("column has zero variance")
	// ErrLengthMismatch is returned when the two inputs differ in length.
	ErrLengthMismatch = errors.New("x and y must have the same length")
	// ErrNonFinite is returned when an input holds an infinite value.
	ErrNonFinite = errors.New("infinite value")
	// ErrUnknownMethod is returned for an unsupported Method.
	ErrUnknownMethod = errors.New("unknown correlation method")
)

// Coefficient computes the correlation between x and y with the given method.
func Coefficient(method Method, x, y []float64) (float64, error) {
	fn, err := method.Func()
	if err != nil {
		return 0, err
	}
	return fn(x, y)
}

// PearsonCorr computes the Pearson correlation coefficient of x and y.
// Rows where either value is NaN are ignored.
func PearsonCorr(x, y []float64) (float64, error) {
	xs, ys, err := complete(x, y)
	if err != nil {
		return 0, err
	}
	return pearson(xs, ys)
}

// SpearmanCorr computes the Spearman rank correlation of x and y: the Pearson
// correlation of their average ranks. Rows where either value is NaN are ignored.
func SpearmanCorr(x, y []float64) (float64, error) {
	xs, ys, err := complete(x, y)
	if err != nil {
		return 0, err
	}
	return pearson(Rank(xs), Rank(ys))
}

// KendallCorr computes the Kendall tau-b rank correlation of x and y, which
// corrects for ties in either input. Rows where either value is NaN are ignored.
func KendallCorr(x, y []float64) (float64, error) {
	xs, ys, err := complete(x, y)
	if err != nil {
		return 0, err
	}

	n := len(xs)
	var concordant, discordant, tiedX, tiedY float64
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			dx := sign(xs[i] - xs[j])
			dy := sign(ys[i] - ys[j])
			if dx == 0 {
				tiedX++
			}
			if dy == 0 {
				tiedY++
			}
			switch s := dx * dy; {
			case s > 0:
				concordant++
			case s < 0:
				discordant++
			}
		}
	}

	pairs := float64(n) * float64(n-1) / 2
	den := math.Sqrt((pairs - tiedX) * (pairs - tiedY))
	if den == 0 {
		return 0, ErrConstantColumn
	}
	return clamp((concordant - discordant) / den), nil
}

// Rank returns the 1-based ranks of x. Tied values receive the average of
// the ranks they span.
func Rank(x []float64) []float64 {
	n := len(x)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[order[a]] < x[order[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && x[order[j]] == x[order[i]] {
			j++
		}
		// positions i..j-1 hold ranks i+1..j
		avg := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}
	return ranks
}

func pearson(x, y []float64) (float64, error) {
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0, ErrConstantColumn
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, ErrConstantColumn
	}
	return clamp(r), nil
}

// complete returns the rows where both x and y are observed.
func complete(x, y []float64) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, ErrLengthMismatch
	}
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		if math.IsInf(x[i], 0) || math.IsInf(y[i], 0) {
			return nil, nil, fmt.Errorf("%w at row %d", ErrNonFinite, i)
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return nil, nil, ErrInsufficientData
	}
	return xs, ys, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// clamp keeps rounding error from pushing a coefficient outside [-1, 1].
func clamp(r float64) float64 {
	return math.Max(-1, math.Min(1, r))
}
