// Package prune removes one member of every highly correlated feature pair.
//
// Pruning is a feature-selection step run before model training. The
// correlation matrix of every column is computed once, its strict lower
// triangle is scanned in column order, and for every pair whose absolute
// correlation exceeds the threshold the later column is dropped.
//
// # Basic Usage
//
//	reduced, err := prune.Prune(ds, correlation.Spearman, 0.7)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// With a configuration and a logger for the marked pairs:
//
//	config := prune.DefaultConfig()
//	config.Method = correlation.Kendall
//	config.Logger = logger
//	reduced, err := prune.PruneWithConfig(ds, config)
//
// Inspect the decision without removing anything:
//
//	analysis, err := prune.Analyze(ds, correlation.Pearson, 0.8)
//	for _, p := range analysis.Pairs {
//	    fmt.Printf("%s ~ %s (r=%.3f): drop %s\n", p.Earlier, p.Later, p.Coefficient, p.Later)
//	}
//
// # Column Order
//
// Which column survives depends only on position: of two correlated
// columns the earlier one is kept. A column that is itself dropped still
// causes later columns correlated with it to be dropped. In a cluster of
// mutually correlated columns only the first survives, so a dataset of
// identical columns is reduced to its first column.
//
// # Limitations
//
// Correlations are not recomputed after removal. Given A~B and B~C with A and
// C uncorrelated, the result depends on column order: with order A, B, C both
// B and C are dropped; with order A, C, B only B is dropped.
//
// # Errors
//
// ErrInvalidInput is returned for fewer than two columns or an unknown method,
// ErrComputation when a coefficient is undefined (constant or all-missing
// columns), and ErrPostcondition if a marked column is missing from the
// dataset. All errors wrap the underlying cause for errors.Is.
package prune
