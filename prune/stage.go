package prune

import (
	"github.com/sartorproj/gocollinear/dataset"
)

// Stage runs the pruner as a pipeline stage.
type Stage struct {
	config *Config
}

// NewStage returns a pruning stage. A nil config uses DefaultConfig.
func NewStage(config *Config) *Stage {
	if config == nil {
		config = DefaultConfig()
	}
	return &Stage{config: config}
}

// Name identifies the stage in pipeline errors.
func (s *Stage) Name() string {
	return "prune(" + s.config.Method.String() + ")"
}

// Apply prunes ds.
func (s *Stage) Apply(ds *dataset.Dataset) (*dataset.Dataset, error) {
	return PruneWithConfig(ds, s.config)
}
