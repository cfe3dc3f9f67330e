// Package forestgo builds decision-forest ensembles in Go.
//
// Given a dataset and a number of trees, forestgo distributes the samples
// across the trees with a sampling strategy, trains one independent tree per
// subset through a pluggable trainer and collects the trained trees into a
// forest.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//
//	    "github.com/YuminosukeSato/forestgo/dataset"
//	    "github.com/YuminosukeSato/forestgo/forest"
//	    "github.com/YuminosukeSato/forestgo/sampling"
//	    "github.com/YuminosukeSato/forestgo/tree"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(6, 1, []float64{1, 2, 3, 7, 8, 9})
//	    y := mat.NewVecDense(6, []float64{0, 0, 0, 1, 1, 1})
//	    ds, err := dataset.NewMatrixDataset(X, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    params := &forest.Parameters[tree.Params]{
//	        NumTrees: 3,
//	        Sampling: sampling.Bagging,
//	        Seed:     42,
//	    }
//	    b, err := forest.NewBuilder(params, tree.NewTrainer)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := b.Build(context.Background(), ds); err != nil {
//	        log.Fatal(err)
//	    }
//	    f, _ := b.CompleteForest()
//	    log.Printf("trained %d trees", f.Len())
//	}
//
// # Packages
//
//   - dataset: Dataset interface, gonum-backed MatrixDataset and index views
//   - random: seeded random source shared by a build
//   - sampling: UniformPartition, Constant and Bagging strategies
//   - forest: Builder, Forest, Parameters and the TreeTrainer contract
//   - tree: reference CART classification tree trainer
//   - config: viper-based configuration loading
//   - core/model: build state management
//   - core/parallel: bounded parallel fan-out
//   - pkg/errors: structured error types
//   - pkg/log: structured logging
//
// # Failure Handling
//
// A tree that fails to train never stops the other trees. The build as a
// whole fails with an *errors.AggregateBuildError that lists every failed
// tree, and the trees that did train stay available through Builder.Forest.
//
// # Concurrency
//
// With Parameters.Workers above one, trees train concurrently. Sampling always
// completes before training starts and the forest keeps tree-index order, so a
// parallel build yields the same forest as a sequential one.
package forestgo
