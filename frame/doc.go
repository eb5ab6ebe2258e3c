// Package frame runs the pruner on qframe data frames.
//
// Frames loaded with qframe can be pruned directly; only float and int
// columns are accepted:
//
//	f := qframe.ReadCSV(file)
//	reduced, err := frame.Prune(f.Drop("label"), correlation.Spearman, 0.7)
//
// FromQFrame and ToQFrame convert between qframe.QFrame and dataset.Dataset.
package frame
