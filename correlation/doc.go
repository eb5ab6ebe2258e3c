// Package correlation provides correlation statistics and correlation matrices.
//
// Three statistics are supported, selected by Method:
//
//   - Spearman: Pearson correlation of average ranks (the default)
//   - Pearson: linear product-moment correlation
//   - Kendall: tau-b concordance, corrected for ties
//
// Missing values (NaN) are handled pairwise: a row is skipped for a pair when
// either value is missing. A coefficient that cannot be computed, because a
// column is constant or fewer than two rows are observed in both columns, is
// an error rather than a substituted value.
//
// # Pairwise Coefficients
//
//	r, err := correlation.SpearmanCorr(x, y)
//	r, err := correlation.Coefficient(correlation.Kendall, x, y)
//
// # Correlation Matrix
//
//	m, err := correlation.Compute(ds, correlation.Spearman)
//	r, err := m.Value("height", "weight")
//
// Only the strict lower triangle is computed; values are mirrored into the
// upper triangle. LowerPairs enumerates those cells in scan order.
package correlation
