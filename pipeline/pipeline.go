// Package pipeline chains dataset transformations.
package pipeline

import (
	"fmt"

	"github.com/sartorproj/gocollinear/dataset"
)

// Stage transforms a dataset into a new one.
type Stage interface {
	Apply(ds *dataset.Dataset) (*dataset.Dataset, error)
}

// Named is implemented by stages that report a name in errors.
type Named interface {
	Name() string
}

// StageFunc adapts a function to the Stage interface.
type StageFunc func(ds *dataset.Dataset) (*dataset.Dataset, error)

// Apply calls f(ds).
func (f StageFunc) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	return f(ds)
}

// Pipeline runs stages in order, feeding each the output of the previous one.
type Pipeline struct {
	stages []Stage
}

// New creates a pipeline from stages.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Then appends a stage and returns the pipeline.
func (p *Pipeline) Then(stage Stage) *Pipeline {
	p.stages = append(p.stages, stage)
	return p
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Apply runs every stage. It stops at the first error, which is wrapped with
// the stage's position and name.
func (p *Pipeline) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	for i, stage := range p.stages {
		out, err := stage.Apply(ds)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, stageName(stage), err)
		}
		ds = out
	}
	return ds, nil
}

func stageName(s Stage) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// Select returns a stage keeping only the named columns, in the given order.
func Select(names ...string) Stage {
	return StageFunc(func(ds *dataset.Dataset) (*dataset.Dataset, error) {
		return ds.Select(names...)
	})
}

// Drop returns a stage removing the named columns.
func Drop(names ...string) Stage {
	return StageFunc(func(ds *dataset.Dataset) (*dataset.Dataset, error) {
		return ds.Drop(names...)
	})
}

// DropSparse returns a stage removing columns whose fraction of missing
// values exceeds maxMissing.
func DropSparse(maxMissing float64) Stage {
	return StageFunc(func(ds *dataset.Dataset) (*dataset.Dataset, error) {
		if ds.NumRows() == 0 {
			return ds, nil
		}
		var sparse []string
		for i := 0; i < ds.NumColumns(); i++ {
			c := ds.ColumnAt(i)
			if float64(c.MissingCount())/float64(ds.NumRows()) > maxMissing {
				sparse = append(sparse, c.Name)
			}
		}
		return ds.Drop(sparse...)
	})
}
