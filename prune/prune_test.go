package prune

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sartorproj/gocollinear/correlation"
	"github.com/sartorproj/gocollinear/dataset"
)

func newDataset(t *testing.T, columns ...dataset.Column) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(columns...)
	require.NoError(t, err)
	return ds
}

func col(name string, values ...float64) dataset.Column {
	return dataset.Column{Name: name, Values: values}
}

// syntheticFeatures returns eight columns with a mix of strong, moderate
// and no correlation between them.
func syntheticFeatures(t *testing.T) *dataset.Dataset {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	n := 60

	base := make([]float64, n)
	other := make([]float64, n)
	for i := range base {
		base[i] = rng.NormFloat64()
		other[i] = rng.NormFloat64()
	}

	derive := func(f func(i int) float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = f(i)
		}
		return out
	}

	return newDataset(t,
		col("x0", base...),
		col("x1", derive(func(i int) float64 { return 2*base[i] + 0.1*rng.NormFloat64() })...),
		col("x2", other...),
		col("x3", derive(func(i int) float64 { return base[i] + other[i] })...),
		col("x4", derive(func(i int) float64 { return math.Exp(other[i]) })...),
		col("x5", derive(func(i int) float64 { return rng.NormFloat64() })...),
		col("x6", derive(func(i int) float64 { return -base[i] + 0.8*rng.NormFloat64() })...),
		col("x7", derive(func(i int) float64 { return 0.5*other[i] + rng.NormFloat64() })...),
	)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, correlation.Spearman, config.Method)
	assert.Equal(t, 0.7, config.Threshold)
	assert.Nil(t, config.Logger)
}

func TestPruneExample(t *testing.T) {
	ds := newDataset(t,
		col("A", 1, 2, 3, 4),
		col("B", 2, 4, 6, 8),
		col("C", 4, 1, 3, 2),
	)

	for _, m := range correlation.Methods {
		t.Run(m.String(), func(t *testing.T) {
			out, err := Prune(ds, m, 0.7)
			require.NoError(t, err)
			assert.Equal(t, []string{"A", "C"}, out.Names())

			a, _ := out.Values("A")
			c, _ := out.Values("C")
			assert.Equal(t, []float64{1, 2, 3, 4}, a)
			assert.Equal(t, []float64{4, 1, 3, 2}, c)
		})
	}
}

func TestPruneDoesNotMutateInput(t *testing.T) {
	ds := newDataset(t, col("A", 1, 2, 3, 4), col("B", 2, 4, 6, 8))
	before := ds.Copy()

	_, err := Prune(ds, DefaultMethod, DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, before.Names(), ds.Names())
	for _, name := range before.Names() {
		want, _ := before.Values(name)
		got, _ := ds.Values(name)
		assert.Equal(t, want, got)
	}
}

func TestPruneTwoCorrelatedColumns(t *testing.T) {
	ds := newDataset(t, col("first", 1, 2, 3, 4, 5), col("second", 10, 9, 8, 7, 6))

	out, err := Prune(ds, correlation.Pearson, 0.7)
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, out.Names())
	assert.Equal(t, 5, out.NumRows())
}

func TestPruneNoOp(t *testing.T) {
	ds := newDataset(t,
		col("A", 1, 2, 3, 4),
		col("C", 4, 1, 3, 2),
		col("D", 3, 1, 2, 4),
	)

	out, err := Prune(ds, correlation.Pearson, 0.7)
	require.NoError(t, err)
	assert.Equal(t, ds.Names(), out.Names())
	assert.Equal(t, ds.NumRows(), out.NumRows())
}

func TestPruneIdenticalColumnsKeepsFirst(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	ds := newDataset(t, col("a", values...), col("b", values...), col("c", values...), col("d", values...))

	analysis, err := Analyze(ds, DefaultMethod, DefaultThreshold)
	require.NoError(t, err)
	// b once, c twice, d three times
	assert.Len(t, analysis.Marked, 6)
	assert.Equal(t, []string{"b", "c", "d"}, analysis.Dropped())

	out, err := analysis.Apply(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, out.Names())
}

func TestPruneOrderDependence(t *testing.T) {
	// corr(A,B) = corr(B,C) = 0.707, corr(A,C) = 0
	a := col("A", 1, 2, 3, 4)
	b := col("B", 3, 6, 4, 7)
	c := col("C", 2, 4, 1, 3)

	t.Run("A,B,C", func(t *testing.T) {
		out, err := Prune(newDataset(t, a, b, c), correlation.Pearson, 0.7)
		require.NoError(t, err)
		// C is dropped because of B even though B is dropped too
		assert.Equal(t, []string{"A"}, out.Names())
	})

	t.Run("A,C,B", func(t *testing.T) {
		out, err := Prune(newDataset(t, a, c, b), correlation.Pearson, 0.7)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C"}, out.Names())
	})

	t.Run("B,A,C", func(t *testing.T) {
		out, err := Prune(newDataset(t, b, a, c), correlation.Pearson, 0.7)
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, out.Names())
	})
}

func TestPruneThresholdExtremes(t *testing.T) {
	ds := newDataset(t,
		col("A", 1, 2, 3, 4),
		col("B", 2, 4, 6, 8),
		col("C", 4, 1, 3, 2),
	)

	testCases := []struct {
		name      string
		threshold float64
		want      []string
	}{
		{"one is permissive", 1, []string{"A", "B", "C"}},
		{"above one", 1.5, []string{"A", "B", "C"}},
		{"zero drops any correlation", 0, []string{"A"}},
		{"negative drops everything but first", -1, []string{"A"}},
		{"NaN marks nothing", math.NaN(), []string{"A", "B", "C"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Prune(ds, correlation.Pearson, tc.threshold)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Names())
		})
	}
}

func TestPruneProperties(t *testing.T) {
	ds := syntheticFeatures(t)
	thresholds := []float64{0.1, 0.3, 0.5, 0.7, 0.9, 0.99}

	for _, m := range correlation.Methods {
		t.Run(m.String(), func(t *testing.T) {
			matrix, err := correlation.Compute(ds, m)
			require.NoError(t, err)

			var previous []string
			for i, threshold := range thresholds {
				out, err := Prune(ds, m, threshold)
				require.NoError(t, err)

				// Row preservation
				assert.Equal(t, ds.NumRows(), out.NumRows())

				// Subset, in original relative order
				last := -1
				for _, name := range out.Names() {
					idx := ds.Index(name)
					require.GreaterOrEqual(t, idx, 0, "%s not in input", name)
					assert.Greater(t, idx, last, "column order changed")
					last = idx

					want, _ := ds.Values(name)
					got, _ := out.Values(name)
					assert.Equal(t, want, got)
				}

				// Threshold holds on the original matrix
				names := out.Names()
				for x := 0; x < len(names); x++ {
					for y := x + 1; y < len(names); y++ {
						r, err := matrix.Value(names[x], names[y])
						require.NoError(t, err)
						assert.LessOrEqual(t, math.Abs(r), threshold, "%s ~ %s", names[x], names[y])
					}
				}

				// Monotonic: a higher threshold never removes more
				analysis, err := Analyze(ds, m, threshold)
				require.NoError(t, err)
				removed := analysis.Dropped()
				if i > 0 {
					for _, name := range removed {
						assert.Contains(t, previous, name, "threshold %.2f removed %s", threshold, name)
					}
				}
				previous = removed
			}
		})
	}
}

func TestPruneSyntheticDropsDerivedFeatures(t *testing.T) {
	ds := syntheticFeatures(t)

	out, err := Prune(ds, correlation.Pearson, 0.9)
	require.NoError(t, err)

	// x1 is 2*x0 plus small noise
	assert.NotContains(t, out.Names(), "x1")
	assert.Contains(t, out.Names(), "x0")
	assert.Contains(t, out.Names(), "x2")
}

func TestPruneErrors(t *testing.T) {
	nan := math.NaN()

	t.Run("single column", func(t *testing.T) {
		_, err := Prune(newDataset(t, col("A", 1, 2, 3)), DefaultMethod, DefaultThreshold)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, correlation.ErrTooFewColumns)
	})

	t.Run("no columns", func(t *testing.T) {
		_, err := Prune(newDataset(t), DefaultMethod, DefaultThreshold)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("nil dataset", func(t *testing.T) {
		_, err := Prune(nil, DefaultMethod, DefaultThreshold)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := Prune(newDataset(t, col("A", 1, 2), col("B", 2, 1)), correlation.Method(7), DefaultThreshold)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, correlation.ErrUnknownMethod)
	})

	t.Run("constant column", func(t *testing.T) {
		ds := newDataset(t, col("A", 1, 2, 3), col("K", 5, 5, 5))
		out, err := Prune(ds, DefaultMethod, DefaultThreshold)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, ErrComputation)
		assert.ErrorIs(t, err, correlation.ErrConstantColumn)
	})

	t.Run("all missing column", func(t *testing.T) {
		ds := newDataset(t, col("A", 1, 2, 3), col("M", nan, nan, nan))
		_, err := Prune(ds, correlation.Kendall, DefaultThreshold)
		assert.ErrorIs(t, err, ErrComputation)
		assert.ErrorIs(t, err, correlation.ErrInsufficientData)
	})
}

func TestAnalysisApplyPostcondition(t *testing.T) {
	analysis := &Analysis{Marked: EliminationSet{"ghost"}}
	ds := newDataset(t, col("A", 1, 2), col("B", 2, 1))

	_, err := analysis.Apply(ds)
	assert.ErrorIs(t, err, ErrPostcondition)
	assert.ErrorIs(t, err, dataset.ErrColumnNotFound)
}

func TestScan(t *testing.T) {
	m := correlation.NewMatrix([]string{"a", "b", "c", "d"}, correlation.Pearson)
	m.Set(1, 0, 0.95)
	m.Set(2, 0, -0.8)
	m.Set(2, 1, 0.75)
	m.Set(3, 2, 0.5)

	marked := Scan(m, 0.7)
	assert.Equal(t, EliminationSet{"b", "c", "c"}, marked)
	assert.Equal(t, []string{"b", "c"}, marked.Unique())
	assert.True(t, marked.Contains("c"))
	assert.False(t, marked.Contains("a"))
	assert.False(t, marked.Contains("d"))

	// Exactly at the threshold is not above it
	assert.Empty(t, Scan(m, 0.95))
}

func TestAnalyzePairs(t *testing.T) {
	ds := newDataset(t,
		col("A", 1, 2, 3, 4),
		col("B", 2, 4, 6, 8),
		col("C", 4, 1, 3, 2),
	)

	analysis, err := Analyze(ds, correlation.Spearman, 0.7)
	require.NoError(t, err)

	require.Len(t, analysis.Pairs, 1)
	assert.Equal(t, "A", analysis.Pairs[0].Earlier)
	assert.Equal(t, "B", analysis.Pairs[0].Later)
	assert.InDelta(t, 1, analysis.Pairs[0].Coefficient, 1e-12)
	assert.Equal(t, 0.7, analysis.Threshold)
	assert.Equal(t, 3, analysis.Matrix.Dims())
}

func TestPruneLogsMarkedPairs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	config := DefaultConfig()
	config.Logger = zap.New(core)

	ds := newDataset(t, col("A", 1, 2, 3, 4), col("B", 2, 4, 6, 8), col("C", 4, 1, 3, 2))
	_, err := PruneWithConfig(ds, config)
	require.NoError(t, err)

	pairs := logs.FilterMessage("correlated pair").All()
	require.Len(t, pairs, 1)
	fields := pairs[0].ContextMap()
	assert.Equal(t, "A", fields["earlier"])
	assert.Equal(t, "B", fields["later"])
	assert.Equal(t, "spearman", fields["method"])

	assert.Equal(t, 1, logs.FilterMessage("pruned correlated columns").Len())
}

func TestPruneWithNilConfig(t *testing.T) {
	ds := newDataset(t, col("A", 1, 2, 3, 4), col("B", 2, 4, 6, 8))

	out, err := PruneWithConfig(ds, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, out.Names())
}

func TestStage(t *testing.T) {
	config := DefaultConfig()
	config.Method = correlation.Kendall
	stage := NewStage(config)

	assert.Equal(t, "prune(kendall)", stage.Name())

	out, err := stage.Apply(newDataset(t, col("A", 1, 2, 3, 4), col("B", 2, 4, 6, 8)))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, out.Names())

	assert.Equal(t, "prune(spearman)", NewStage(nil).Name())
}
