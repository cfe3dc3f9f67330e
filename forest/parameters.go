package forest

import (
	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
	"github.com/YuminosukeSato/forestgo/sampling"
)

// Parameters configures a forest build. P holds the tree-growth hyperparameters,
// which the builder forwards to every trainer without inspecting them.
//
// A Builder keeps a pointer to its Parameters and never modifies them; callers
// must not modify them either while the builder is in use.
type Parameters[P any] struct {
	// NumTrees is the number of trees in the forest. Must be positive.
	NumTrees int `json:"num_trees"`

	// Sampling selects how samples are distributed across trees.
	Sampling sampling.Strategy `json:"sampling"`

	// Seed seeds the random source shared by sampling when no source is injected
	// with WithRandomSource. Trainers may derive their own seeds from it.
	Seed uint64 `json:"seed"`

	// Workers is the number of trees trained concurrently. 0 or 1 trains
	// sequentially in tree-index order.
	Workers int `json:"workers"`

	// Tree holds the tree-growth hyperparameters.
	Tree P `json:"tree"`
}

// Validate checks the builder-level fields.
func (p *Parameters[P]) Validate() error {
	if p.NumTrees <= 0 {
		return forestErrors.NewValidationError("NumTrees", "must be positive", p.NumTrees)
	}
	if !p.Sampling.Valid() {
		return forestErrors.NewValidationError("Sampling", "unknown sampling strategy", int(p.Sampling))
	}
	if p.Workers < 0 {
		return forestErrors.NewValidationError("Workers", "must not be negative", p.Workers)
	}
	return nil
}
