// Package gocollinear removes redundant numeric features by pairwise
// correlation.
//
// gocollinear computes the correlation matrix of a tabular dataset with
// Spearman, Pearson or Kendall correlation and drops the later column of
// every pair whose absolute correlation exceeds a threshold. Column order
// decides which member of a correlated pair survives.
//
// # Features
//
//   - Spearman (default), Pearson and Kendall tau-b correlation
//   - Pairwise-complete handling of missing values
//   - Deterministic, order-based elimination with an inspectable analysis
//   - CSV loading and writing, qframe interoperability
//   - Composable preprocessing pipelines
//   - The corrprune command line tool
//
// # Quick Start
//
// Prune a dataset with the defaults (Spearman, 0.7):
//
//	ds, _ := dataset.LoadCSV("features.csv", nil)
//	pruned, _ := prune.Prune(ds, prune.DefaultMethod, prune.DefaultThreshold)
//
// Inspect which pairs caused each removal:
//
//	analysis, _ := prune.Analyze(ds, correlation.Kendall, 0.8)
//	for _, p := range analysis.Pairs {
//		fmt.Println(p.Earlier, p.Later, p.Coefficient)
//	}
//
// # Packages
//
//   - dataset: Named numeric columns, CSV input and output
//   - correlation: Coefficients and correlation matrices
//   - prune: Threshold-based elimination of correlated columns
//   - pipeline: Sequential dataset transformation stages
//   - frame: qframe adapters
//
// # References
//
//   - Kendall, M. G. (1945). The treatment of ties in ranking problems
//   - Spearman, C. (1904). The proof and measurement of association between two things
package gocollinear
