package dataset

import (
	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
)

// View is an immutable logical subset of a Dataset: the dataset plus an
// ordered sequence of sample indices. Duplicate indices are legal and mean the
// sample is seen more than once, which bootstrap sampling relies on.
type View struct {
	ds      Dataset
	indices []int
}

// NewView creates a view over ds. The index slice is owned by the view
// afterwards and must not be modified by the caller.
func NewView(ds Dataset, indices []int) *View {
	return &View{ds: ds, indices: indices}
}

// Dataset returns the underlying dataset.
func (v *View) Dataset() Dataset {
	return v.ds
}

// Size returns the number of positions in the view.
func (v *View) Size() int {
	return len(v.indices)
}

// Index returns the dataset index stored at position pos.
func (v *View) Index(pos int) int {
	return v.indices[pos]
}

// Indices returns a copy of the view's index sequence.
func (v *View) Indices() []int {
	out := make([]int, len(v.indices))
	copy(out, v.indices)
	return out
}

// SampleAt returns the dataset sample referenced by position pos.
func (v *View) SampleAt(pos int) Sample {
	return v.ds.SampleAt(v.indices[pos])
}

// Validate checks that every index lies in [0, Dataset().Size()).
func (v *View) Validate() error {
	size := v.ds.Size()
	for pos, idx := range v.indices {
		if idx < 0 || idx >= size {
			return forestErrors.NewIndexRangeError("View.Validate", pos, idx, size)
		}
	}
	return nil
}
