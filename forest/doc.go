// Package forest builds decision forests out of independently trained trees.
//
// A Builder owns one TreeTrainer per tree. Build partitions the dataset with the
// configured sampling strategy, trains every tree on its own view and collects
// the successfully trained trees into a Forest in tree-index order.
//
// Failure policy: a tree that fails to train does not stop the others, but the
// build as a whole fails and Build returns an *errors.AggregateBuildError naming
// the failed trees. The trees that did train stay available through
// Builder.Forest; Builder.CompleteForest only returns a forest when every tree
// trained.
//
// Example:
//
//	params := &forest.Parameters[tree.Params]{
//	    NumTrees: 50,
//	    Sampling: sampling.Bagging,
//	    Seed:     42,
//	    Tree:     tree.Params{MaxDepth: 8},
//	}
//	b, err := forest.NewBuilder(params, tree.NewTrainer)
//	if err != nil {
//	    return err
//	}
//	if err := b.Build(ctx, ds); err != nil {
//	    return err
//	}
//	f, _ := b.CompleteForest()
package forest
