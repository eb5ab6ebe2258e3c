// Package dataset provides the named-column numeric table used by the pruner.
//
// A Dataset is an ordered collection of equally long float64 columns. Column
// order is significant: it decides which member of a correlated pair is kept.
// Every operation returns a new Dataset and leaves the receiver untouched.
//
// # Creating a Dataset
//
//	ds, err := dataset.New(
//	    dataset.Column{Name: "A", Values: []float64{1, 2, 3, 4}},
//	    dataset.Column{Name: "B", Values: []float64{2, 4, 6, 8}},
//	)
//
// Or from row-major data:
//
//	ds, err := dataset.FromRows([]string{"A", "B"}, [][]float64{{1, 2}, {2, 4}})
//
// # Loading from CSV
//
//	opts := dataset.DefaultCSVOptions()
//	opts.Exclude = []string{"target"}
//	ds, err := dataset.LoadCSV("features.csv", opts)
//
// Empty cells and NA, NaN, null tokens become NaN. Any other non-numeric cell
// is an error naming the column.
//
// # Removing Columns
//
//	reduced, err := ds.Drop("B")
//	reduced, err := ds.Select("A")
package dataset
