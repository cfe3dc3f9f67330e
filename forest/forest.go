package forest

import "sync"

// Forest is an ordered, append-only collection of trained trees.
// Trees appear in the tree-index order of the trainers that produced them;
// failed trainers leave no placeholder.
type Forest[T any] struct {
	mu    sync.RWMutex
	trees []T
}

// NewForest returns an empty forest with room for capacity trees.
func NewForest[T any](capacity int) *Forest[T] {
	return &Forest[T]{trees: make([]T, 0, capacity)}
}

// Add appends a tree.
func (f *Forest[T]) Add(tree T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trees = append(f.trees, tree)
}

// Len returns the number of trees.
func (f *Forest[T]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.trees)
}

// Tree returns the i-th tree.
func (f *Forest[T]) Tree(i int) T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.trees[i]
}

// Trees returns a copy of the tree slice.
func (f *Forest[T]) Trees() []T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]T, len(f.trees))
	copy(out, f.trees)
	return out
}
