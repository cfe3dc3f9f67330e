// Package log defines standard attribute keys for forest building operations.
//
// Using these keys keeps the diagnostics emitted by the sampling policy, the
// forest builder and the tree trainers consistent, so that logs from different
// builds can be filtered and compared. Keys follow a hierarchical naming
// convention (e.g. "forest.trees", "data.samples").

package log

// Component and Operation Context
const (
	// ComponentKey identifies which component is emitting the record.
	// Examples: "forest.builder", "sampling", "tree.trainer"
	ComponentKey = "ml.component"

	// OperationKey specifies the operation being performed.
	// Standard values: OperationBuild, OperationSample, OperationTrain
	OperationKey = "ml.operation"

	// PhaseKey indicates the phase of a build.
	PhaseKey = "ml.phase"
)

// Forest and Tree Context
const (
	// TreeCountKey is the configured number of trees in the forest.
	TreeCountKey = "forest.trees"

	// TreeIndexKey is the index of the tree a record refers to.
	TreeIndexKey = "forest.tree_index"

	// TrainedTreesKey is the number of trees successfully added to the forest.
	TrainedTreesKey = "forest.trained"

	// FailedTreesKey lists the indices of trees whose training failed.
	FailedTreesKey = "forest.failed_trees"

	// SamplingStrategyKey names the sampling strategy used to build tree subsets.
	SamplingStrategyKey = "forest.sampling"

	// BuildStateKey records the terminal build state.
	BuildStateKey = "forest.state"

	// WorkersKey records how many trees may train concurrently.
	WorkersKey = "forest.workers"

	// TreeDepthKey records the depth of a trained tree.
	TreeDepthKey = "tree.depth"

	// TreeNodesKey records the number of nodes in a trained tree.
	TreeNodesKey = "tree.nodes"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples in a dataset or subset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features per sample.
	FeaturesKey = "data.features"

	// SubsetSizeKey records the size of a per-tree subset.
	SubsetSizeKey = "data.subset_size"
)

// Performance
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// DurationSecondsKey records the execution time in seconds for longer operations.
	DurationSecondsKey = "perf.duration_seconds"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// SuggestionKey provides a hint for resolving an issue.
	SuggestionKey = "error.suggestion"
)

// Configuration
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationBuild  = "build"
	OperationSample = "sample"
	OperationTrain  = "train"

	PhaseSampling = "sampling"
	PhaseTraining = "training"

	ErrorPrecondition  = "PRECONDITION_VIOLATION"
	ErrorTreeTraining  = "TREE_TRAINING_FAILURE"
	ErrorAggregateFail = "AGGREGATE_BUILD_FAILURE"
)
