package forest

import (
	"context"
	"time"

	"github.com/YuminosukeSato/forestgo/dataset"
)

// TreeTrainer grows a single tree from one view of the dataset.
// The builder calls Train at most once per build; Tree is only called after
// Train returned nil.
type TreeTrainer[T any] interface {
	// Train grows the tree on view. Implementations should return promptly
	// once ctx is done.
	Train(ctx context.Context, view *dataset.View) error
	// Tree returns the trained tree.
	Tree() T
}

// TrainerFactory creates the trainer for tree treeIndex. Every call receives the
// builder's own Parameters pointer.
type TrainerFactory[T, P any] func(params *Parameters[P], treeIndex int) TreeTrainer[T]

// TrainerFunc adapts a function to a TreeTrainer.
type TrainerFunc[T any] func(ctx context.Context, view *dataset.View) (T, error)

// funcTrainer holds the result of a TrainerFunc.
type funcTrainer[T any] struct {
	fn   TrainerFunc[T]
	tree T
}

// NewFuncTrainer wraps fn as a TreeTrainer.
func NewFuncTrainer[T any](fn TrainerFunc[T]) TreeTrainer[T] {
	return &funcTrainer[T]{fn: fn}
}

func (t *funcTrainer[T]) Train(ctx context.Context, view *dataset.View) error {
	tree, err := t.fn(ctx, view)
	if err != nil {
		return err
	}
	t.tree = tree
	return nil
}

func (t *funcTrainer[T]) Tree() T {
	return t.tree
}

// Clock supplies the build timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}
