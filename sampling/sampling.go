package sampling

import (
	"github.com/YuminosukeSato/forestgo/dataset"
	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
	"github.com/YuminosukeSato/forestgo/random"
)

// Sample produces exactly numTrees views over ds according to strategy.
//
// The random source is consulted in a fixed order: one shuffle of the full index
// sequence, then per-tree work in tree-index order. Identically seeded sources
// therefore yield identical views.
//
// numTrees must lie in [1, ds.Size()].
func Sample(ds dataset.Dataset, numTrees int, strategy Strategy, src random.Source) ([]*dataset.View, error) {
	if !strategy.Valid() {
		return nil, forestErrors.NewValidationError("sampling", "unknown sampling strategy", int(strategy))
	}
	if numTrees <= 0 {
		return nil, forestErrors.NewValidationError("NumTrees", "must be positive", numTrees)
	}
	setSize := ds.Size()
	if numTrees > setSize {
		return nil, forestErrors.NewPreconditionError("sampling.Sample", numTrees, setSize)
	}

	indices := make([]int, setSize)
	for i := range indices {
		indices[i] = i
	}
	random.ShuffleInts(src, indices)

	switch strategy {
	case UniformPartition:
		return uniformPartition(ds, indices, numTrees), nil
	case Constant:
		return constant(ds, indices, numTrees, src), nil
	default:
		return bagging(ds, indices, numTrees, src), nil
	}
}

// uniformPartition assigns each tree a contiguous block of the shuffled sequence and
// hands the remainder out one index per tree to the first setSize%numTrees trees.
func uniformPartition(ds dataset.Dataset, shuffled []int, numTrees int) []*dataset.View {
	setSize := len(shuffled)
	subsetSize := setSize / numTrees
	remainder := setSize % numTrees

	views := make([]*dataset.View, numTrees)
	for i := 0; i < numTrees; i++ {
		n := subsetSize
		if i < remainder {
			n++
		}
		sub := make([]int, 0, n)
		sub = append(sub, shuffled[i*subsetSize:(i+1)*subsetSize]...)
		if i < remainder {
			sub = append(sub, shuffled[numTrees*subsetSize+i])
		}
		views[i] = dataset.NewView(ds, sub)
	}
	return views
}

// constant gives every tree all indices, each independently reshuffled.
func constant(ds dataset.Dataset, shuffled []int, numTrees int, src random.Source) []*dataset.View {
	views := make([]*dataset.View, numTrees)
	for i := 0; i < numTrees; i++ {
		sub := make([]int, len(shuffled))
		copy(sub, shuffled)
		random.ShuffleInts(src, sub)
		views[i] = dataset.NewView(ds, sub)
	}
	return views
}

// bagging draws len(indices) indices with replacement for every tree.
func bagging(ds dataset.Dataset, indices []int, numTrees int, src random.Source) []*dataset.View {
	views := make([]*dataset.View, numTrees)
	for i := 0; i < numTrees; i++ {
		sub := make([]int, len(indices))
		for j := range sub {
			sub[j] = random.DrawOne(src, indices)
		}
		views[i] = dataset.NewView(ds, sub)
	}
	return views
}

// Coverage counts how many times each dataset index appears across views.
func Coverage(views []*dataset.View, setSize int) []int {
	counts := make([]int, setSize)
	for _, v := range views {
		for pos := 0; pos < v.Size(); pos++ {
			counts[v.Index(pos)]++
		}
	}
	return counts
}
