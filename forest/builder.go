package forest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/YuminosukeSato/forestgo/core/model"
	"github.com/YuminosukeSato/forestgo/core/parallel"
	"github.com/YuminosukeSato/forestgo/dataset"
	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
	"github.com/YuminosukeSato/forestgo/pkg/log"
	"github.com/YuminosukeSato/forestgo/random"
	"github.com/YuminosukeSato/forestgo/sampling"
)

// Builder trains a forest of NumTrees trees, one trainer per tree.
//
// A Builder runs at most one build; call Reset to build again.
// Accessors are safe to call concurrently with Build.
type Builder[T, P any] struct {
	params     *Parameters[P]
	newTrainer TrainerFactory[T, P]

	logger  log.Logger
	src     random.Source
	clock   Clock
	metrics *Metrics
	workers int

	state *model.StateManager

	mu       sync.RWMutex
	trainers []TreeTrainer[T]
	forest   *Forest[T]
	report   Report
}

// treeResult is the outcome of one trainer, written to its own slot.
type treeResult[T any] struct {
	tree T
	err  error
}

// NewBuilder creates a builder and one trainer per tree from newTrainer.
// Every trainer receives params itself, not a copy.
func NewBuilder[T, P any](params *Parameters[P], newTrainer TrainerFactory[T, P], opts ...Option) (*Builder[T, P], error) {
	if params == nil {
		return nil, forestErrors.NewValidationError("params", "must not be nil", nil)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if newTrainer == nil {
		return nil, forestErrors.NewValidationError("newTrainer", "must not be nil", nil)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Builder[T, P]{
		params:     params,
		newTrainer: newTrainer,
		logger:     o.logger,
		src:        o.src,
		clock:      o.clock,
		metrics:    o.metrics,
		workers:    params.Workers,
		state:      model.NewStateManager(),
	}
	if b.logger == nil {
		b.logger = log.GetLoggerWithName("forest.builder")
	}
	if b.src == nil {
		b.src = random.New(params.Seed)
	}
	if b.clock == nil {
		b.clock = SystemClock
	}
	if o.workers != nil {
		if *o.workers < 0 {
			return nil, forestErrors.NewValidationError("workers", "must not be negative", *o.workers)
		}
		b.workers = *o.workers
	}

	trainers, err := b.createTrainers()
	if err != nil {
		return nil, err
	}
	b.trainers = trainers
	b.forest = NewForest[T](params.NumTrees)
	b.report = Report{State: model.NotStarted, Strategy: params.Sampling, NumTrees: params.NumTrees}
	return b, nil
}

func (b *Builder[T, P]) createTrainers() ([]TreeTrainer[T], error) {
	trainers := make([]TreeTrainer[T], b.params.NumTrees)
	for i := range trainers {
		tr := b.newTrainer(b.params, i)
		if tr == nil {
			return nil, forestErrors.Newf("forestgo: trainer factory returned nil for tree %d", i)
		}
		trainers[i] = tr
	}
	return trainers, nil
}

// Build samples ds, trains every tree and collects the trained trees.
//
// It returns nil only when every tree trained. If NumTrees exceeds ds.Size(),
// Build returns an *errors.PreconditionError without sampling or training and
// the builder stays unbuilt. If any tree fails, the remaining trees are still
// trained and Build returns an *errors.AggregateBuildError; the trained trees
// remain available through Forest.
func (b *Builder[T, P]) Build(ctx context.Context, ds dataset.Dataset) error {
	if b.state.State() != model.NotStarted {
		return forestErrors.WithStack(forestErrors.ErrBuildAlreadyStarted)
	}

	numTrees := b.params.NumTrees
	size := ds.Size()
	logger := b.logger.With(log.OperationKey, log.OperationBuild, log.TreeCountKey, numTrees)

	if numTrees > size {
		logger.Warn("The number of trees is greater than the number of training samples. Cannot train forest.",
			log.SamplesKey, size,
			log.ErrorCodeKey, log.ErrorPrecondition,
			log.SuggestionKey, "reduce the number of trees or provide more samples",
		)
		b.metrics.observePrecondition()
		return forestErrors.NewPreconditionError("Build", numTrees, size)
	}

	if err := b.state.Begin(numTrees, size); err != nil {
		return forestErrors.Wrap(forestErrors.ErrBuildAlreadyStarted, err.Error())
	}

	logger.Info(strategyMessage(b.params.Sampling),
		log.PhaseKey, log.PhaseSampling,
		log.SamplingStrategyKey, b.params.Sampling.String(),
		log.SamplesKey, size,
	)
	views, err := sampling.Sample(ds, numTrees, b.params.Sampling, b.src)
	if err != nil {
		// Unreachable after the checks above unless the dataset changed size.
		_ = b.state.Finish(false)
		b.setReport(Report{State: model.Failed, Strategy: b.params.Sampling, NumTrees: numTrees, DatasetSize: size})
		return err
	}

	workers := b.workers
	if workers < 1 {
		workers = 1
	}
	started := b.clock.Now()
	logger.Debug("Training trees",
		log.PhaseKey, log.PhaseTraining,
		log.WorkersKey, parallel.Workers(numTrees, workers),
	)

	results := make([]treeResult[T], numTrees)
	_ = parallel.ForEach(ctx, numTrees, workers, func(ctx context.Context, i int) error {
		results[i] = b.trainTree(ctx, logger, i, views[i])
		return nil
	})

	var failures []*forestErrors.TreeTrainingError
	b.mu.Lock()
	for i, r := range results {
		if r.err != nil {
			failures = append(failures, forestErrors.NewTreeTrainingError(i, r.err))
			continue
		}
		b.forest.Add(r.tree)
	}
	trained := b.forest.Len()
	b.mu.Unlock()

	finished := b.clock.Now()
	elapsed := finished.Sub(started)
	logger.Info("Forest training finished",
		log.DurationSecondsKey, elapsed.Seconds(),
		log.TrainedTreesKey, trained,
	)

	ok := len(failures) == 0
	state := model.Succeeded
	if !ok {
		state = model.Failed
	}
	if err := b.state.Finish(ok); err != nil {
		return forestErrors.Wrap(err, "forestgo: finishing build")
	}

	var buildErr error
	var failed []int
	if !ok {
		buildErr = forestErrors.NewAggregateBuildError(numTrees, failures)
		var agg *forestErrors.AggregateBuildError
		if forestErrors.As(buildErr, &agg) {
			failed = agg.FailedTrees()
		}
		logger.Error("Forest build failed", buildErr,
			log.FailedTreesKey, failed,
			log.TrainedTreesKey, trained,
			log.ErrorCodeKey, log.ErrorAggregateFail,
		)
	}

	b.setReport(Report{
		State:       state,
		Strategy:    b.params.Sampling,
		NumTrees:    numTrees,
		DatasetSize: size,
		Trained:     trained,
		FailedTrees: failed,
		Started:     started,
		Finished:    finished,
		Elapsed:     elapsed,
	})
	b.metrics.observeBuild(state, elapsed)
	return buildErr
}

// trainTree runs the trainer of tree i on view. A trainer whose turn comes
// after ctx is done is not started.
func (b *Builder[T, P]) trainTree(ctx context.Context, logger log.Logger, i int, view *dataset.View) treeResult[T] {
	if err := ctx.Err(); err != nil {
		logger.Error("Tree not trained, build cancelled", err,
			log.TreeIndexKey, i,
			log.ErrorCodeKey, log.ErrorTreeTraining,
		)
		b.metrics.observeTree(outcomeSkipped, 0)
		return treeResult[T]{err: err}
	}

	logger.Info(fmt.Sprintf("Training tree number %d...", i),
		log.TreeIndexKey, i,
		log.SubsetSizeKey, view.Size(),
	)

	trainer := b.trainers[i]
	start := time.Now()
	err := forestErrors.SafeExecute(fmt.Sprintf("training tree %d", i), func() error {
		return trainer.Train(ctx, view)
	})
	d := time.Since(start)
	if err != nil {
		logger.Error(fmt.Sprintf("Problem training tree number %d.", i), err,
			log.TreeIndexKey, i,
			log.ErrorCodeKey, log.ErrorTreeTraining,
		)
		b.metrics.observeTree(outcomeFailed, d)
		return treeResult[T]{err: err}
	}

	logger.Debug("Tree trained",
		log.TreeIndexKey, i,
		log.DurationMsKey, d.Milliseconds(),
	)
	b.metrics.observeTree(outcomeTrained, d)
	return treeResult[T]{tree: trainer.Tree()}
}

func strategyMessage(s sampling.Strategy) string {
	switch s {
	case sampling.UniformPartition:
		return "Uniformly splitting data between trees."
	case sampling.Constant:
		return "Passing all data to all trees."
	case sampling.Bagging:
		return "Using bagging to split data between trees."
	default:
		return "Sampling data for trees."
	}
}

func (b *Builder[T, P]) setReport(r Report) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.report = r
}

// Forest returns the trees trained so far. After a failed build it holds the
// trees that trained successfully, in tree-index order.
func (b *Builder[T, P]) Forest() *Forest[T] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.forest
}

// CompleteForest returns the forest only if every tree trained.
func (b *Builder[T, P]) CompleteForest() (*Forest[T], error) {
	if s := b.state.State(); s != model.Succeeded {
		return nil, forestErrors.Wrapf(forestErrors.ErrNotBuilt, "build state %s", s)
	}
	return b.Forest(), nil
}

// IsBuildComplete reports whether a build finished, successfully or not.
func (b *Builder[T, P]) IsBuildComplete() bool {
	return b.state.IsTerminal()
}

// State returns the current build state.
func (b *Builder[T, P]) State() model.BuildState {
	return b.state.State()
}

// Report returns a summary of the latest build.
func (b *Builder[T, P]) Report() Report {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := b.report
	r.State = b.state.State()
	if r.FailedTrees != nil {
		r.FailedTrees = append([]int(nil), r.FailedTrees...)
	}
	return r
}

// Parameters returns the parameters the builder was created with.
func (b *Builder[T, P]) Parameters() *Parameters[P] {
	return b.params
}

// Reset discards the forest and the build state and creates fresh trainers,
// so that Build can run again with the same parameters.
// The random source keeps its current position.
func (b *Builder[T, P]) Reset() error {
	if b.state.State() == model.InProgress {
		return forestErrors.New("forestgo: cannot reset while a build is in progress")
	}
	trainers, err := b.createTrainers()
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.trainers = trainers
	b.forest = NewForest[T](b.params.NumTrees)
	b.report = Report{State: model.NotStarted, Strategy: b.params.Sampling, NumTrees: b.params.NumTrees}
	b.mu.Unlock()

	b.state.Reset()
	return nil
}
