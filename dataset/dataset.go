// Package dataset provides the read-only training data consumed by the forest builder
// and the index views through which each tree sees its subset of that data.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
)

// Sample is a single training example.
type Sample struct {
	Features []float64
	Target   float64
}

// Dataset is a fixed-size, indexed collection of samples.
// Implementations must not change while a forest is being built; views and
// trainers read it concurrently without locking.
type Dataset interface {
	// Size returns the number of samples.
	Size() int
	// SampleAt returns the sample at index i, 0 <= i < Size().
	SampleAt(i int) Sample
}

// MatrixDataset is a Dataset backed by a gonum feature matrix and target vector.
type MatrixDataset struct {
	x mat.Matrix
	y mat.Vector
}

// NewMatrixDataset creates a dataset whose row i is (X[i, :], y[i]).
func NewMatrixDataset(X mat.Matrix, y mat.Vector) (*MatrixDataset, error) {
	rows, _ := X.Dims()
	if rows == 0 {
		return nil, forestErrors.Wrap(forestErrors.ErrEmptyData, "NewMatrixDataset")
	}
	if y.Len() != rows {
		return nil, forestErrors.NewDimensionError("NewMatrixDataset", rows, y.Len(), 0)
	}
	return &MatrixDataset{x: X, y: y}, nil
}

// Size implements Dataset.
func (d *MatrixDataset) Size() int {
	rows, _ := d.x.Dims()
	return rows
}

// NumFeatures returns the number of feature columns.
func (d *MatrixDataset) NumFeatures() int {
	_, cols := d.x.Dims()
	return cols
}

// SampleAt implements Dataset. The returned feature slice is a copy.
func (d *MatrixDataset) SampleAt(i int) Sample {
	return Sample{
		Features: mat.Row(nil, i, d.x),
		Target:   d.y.AtVec(i),
	}
}
