// Package pipeline chains dataset transformations.
//
// A Stage maps a Dataset to a new Dataset. Stages compose into a Pipeline,
// which is itself a Stage:
//
//	p := pipeline.New(
//	    pipeline.Drop("id"),
//	    pipeline.DropSparse(0.5),
//	    prune.NewStage(prune.DefaultConfig()),
//	)
//	features, err := p.Apply(ds)
//
// Any function with the right signature becomes a stage through StageFunc.
package pipeline
