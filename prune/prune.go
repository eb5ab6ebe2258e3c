// Package prune removes one member of every highly correlated feature pair.
package prune

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/sartorproj/gocollinear/correlation"
	"github.com/sartorproj/gocollinear/dataset"
)

const (
	// DefaultMethod is the correlation statistic used when none is given.
	DefaultMethod = correlation.Spearman
	// DefaultThreshold is the absolute correlation above which a pair is
	// considered collinear (Dormann et al. 2013).
	DefaultThreshold = 0.7
)

var (
	// ErrInvalidInput is returned for datasets the pruner cannot work on.
	ErrInvalidInput = errors.New("invalid input")
	// ErrComputation wraps a failure of the correlation statistic.
	ErrComputation = errors.New("correlation computation failed")
	// ErrPostcondition is returned when a marked column is missing from the
	// dataset. It indicates a bug, not bad input.
	ErrPostcondition = errors.New("postcondition violated")
)

// Config holds configuration for pruning.
type Config struct {
	Method    correlation.Method // Correlation statistic (default: spearman)
	Threshold float64            // Absolute correlation cutoff (default: 0.7)
	Logger    *zap.Logger        // Debug logging of marked pairs (default: no-op)
}

// DefaultConfig returns the default pruning configuration.
func DefaultConfig() *Config {
	return &Config{
		Method:    DefaultMethod,
		Threshold: DefaultThreshold,
	}
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// CorrelatedPair is a column pair whose absolute correlation exceeds the threshold.
// Earlier precedes Later in column order; Later is the column marked for removal.
type CorrelatedPair struct {
	Earlier     string
	Later       string
	Coefficient float64
}

// EliminationSet lists the columns marked for removal in scan order.
// A column correlated with several earlier columns appears once per pair.
type EliminationSet []string

// Unique returns the marked columns without repeats, in first-marked order.
func (s EliminationSet) Unique() []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))
	for _, name := range s {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Contains reports whether name is marked.
func (s EliminationSet) Contains(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}

// Analysis is the outcome of one scan: the matrix it ran on, the pairs above
// the threshold, and the resulting marks.
type Analysis struct {
	Matrix    *correlation.Matrix
	Threshold float64
	Pairs     []CorrelatedPair
	Marked    EliminationSet
}

// Dropped returns the distinct columns that pruning removes.
func (a *Analysis) Dropped() []string {
	return a.Marked.Unique()
}

// Apply removes the marked columns from ds. ds must carry every marked column.
func (a *Analysis) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out, err := ds.Drop(a.Marked...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPostcondition, err)
	}
	return out, nil
}

// Scan walks the strict lower triangle of m in column order and marks the
// row column of every cell whose absolute value exceeds threshold.
// Between two correlated columns the later one is always the one marked.
// A NaN threshold marks nothing.
func Scan(m *correlation.Matrix, threshold float64) EliminationSet {
	_, marked := scan(m, threshold)
	return marked
}

func scan(m *correlation.Matrix, threshold float64) ([]CorrelatedPair, EliminationSet) {
	var (
		pairs  []CorrelatedPair
		marked EliminationSet
	)
	for _, p := range correlation.LowerPairs(m.Dims()) {
		r := m.At(p.Row, p.Col)
		if math.Abs(r) > threshold {
			pairs = append(pairs, CorrelatedPair{
				Earlier:     m.Name(p.Col),
				Later:       m.Name(p.Row),
				Coefficient: r,
			})
			marked = append(marked, m.Name(p.Row))
		}
	}
	return pairs, marked
}

// Analyze computes the correlation matrix of ds and scans it, without
// removing anything.
func Analyze(ds *dataset.Dataset, method correlation.Method, threshold float64) (*Analysis, error) {
	return AnalyzeWithConfig(ds, &Config{Method: method, Threshold: threshold})
}

// AnalyzeWithConfig is Analyze driven by a Config.
func AnalyzeWithConfig(ds *dataset.Dataset, config *Config) (*Analysis, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if ds == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrInvalidInput)
	}
	if !config.Method.Valid() {
		return nil, fmt.Errorf("%w: %w: %d", ErrInvalidInput, correlation.ErrUnknownMethod, int(config.Method))
	}
	if ds.NumColumns() < 2 {
		return nil, fmt.Errorf("%w: %w: got %d", ErrInvalidInput, correlation.ErrTooFewColumns, ds.NumColumns())
	}

	m, err := correlation.Compute(ds, config.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrComputation, err)
	}

	log := config.logger()
	pairs, marked := scan(m, config.Threshold)
	for _, p := range pairs {
		log.Debug("correlated pair",
			zap.String("earlier", p.Earlier),
			zap.String("later", p.Later),
			zap.Float64("coefficient", p.Coefficient),
			zap.Stringer("method", config.Method),
		)
	}

	return &Analysis{
		Matrix:    m,
		Threshold: config.Threshold,
		Pairs:     pairs,
		Marked:    marked,
	}, nil
}

// Prune returns a copy of ds without one member of every column pair whose
// absolute correlation under method exceeds threshold. The later column of
// each pair is removed. Correlations are measured once on ds and are not
// recomputed as columns are removed. ds is not modified.
func Prune(ds *dataset.Dataset, method correlation.Method, threshold float64) (*dataset.Dataset, error) {
	return PruneWithConfig(ds, &Config{Method: method, Threshold: threshold})
}

// PruneWithConfig is Prune driven by a Config.
func PruneWithConfig(ds *dataset.Dataset, config *Config) (*dataset.Dataset, error) {
	if config == nil {
		config = DefaultConfig()
	}

	analysis, err := AnalyzeWithConfig(ds, config)
	if err != nil {
		return nil, err
	}

	out, err := analysis.Apply(ds)
	if err != nil {
		return nil, err
	}

	config.logger().Debug("pruned correlated columns",
		zap.Strings("dropped", analysis.Dropped()),
		zap.Int("kept", out.NumColumns()),
		zap.Float64("threshold", config.Threshold),
	)
	return out, nil
}
