package forest

import (
	"time"

	"github.com/YuminosukeSato/forestgo/core/model"
	"github.com/YuminosukeSato/forestgo/sampling"
)

// Report summarizes the most recent build of a Builder.
type Report struct {
	State       model.BuildState
	Strategy    sampling.Strategy
	NumTrees    int
	DatasetSize int
	Trained     int
	FailedTrees []int
	Started     time.Time
	Finished    time.Time
	Elapsed     time.Duration
}

// Partial reports whether the build failed but left some trained trees behind.
func (r Report) Partial() bool {
	return r.State == model.Failed && r.Trained > 0
}
