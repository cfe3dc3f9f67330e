package dataset

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
)

func newTestDataset(t *testing.T) *MatrixDataset {
	t.Helper()
	X := mat.NewDense(4, 2, []float64{
		0, 1,
		2, 3,
		4, 5,
		6, 7,
	})
	y := mat.NewVecDense(4, []float64{0, 1, 0, 1})
	ds, err := NewMatrixDataset(X, y)
	if err != nil {
		t.Fatalf("NewMatrixDataset() error = %v", err)
	}
	return ds
}

func TestMatrixDataset(t *testing.T) {
	ds := newTestDataset(t)

	if ds.Size() != 4 {
		t.Errorf("Size() = %d, want 4", ds.Size())
	}
	if ds.NumFeatures() != 2 {
		t.Errorf("NumFeatures() = %d, want 2", ds.NumFeatures())
	}

	s := ds.SampleAt(2)
	if s.Features[0] != 4 || s.Features[1] != 5 || s.Target != 0 {
		t.Errorf("SampleAt(2) = %+v", s)
	}

	// SampleAt returns a copy.
	s.Features[0] = 100
	if ds.SampleAt(2).Features[0] != 4 {
		t.Error("mutating a returned sample must not change the dataset")
	}
}

func TestNewMatrixDataset_Errors(t *testing.T) {
	X := mat.NewDense(3, 2, nil)

	_, err := NewMatrixDataset(X, mat.NewVecDense(2, nil))
	var dimErr *forestErrors.DimensionError
	if !forestErrors.As(err, &dimErr) {
		t.Errorf("expected DimensionError, got %v", err)
	}
}

func TestView(t *testing.T) {
	ds := newTestDataset(t)
	v := NewView(ds, []int{3, 1, 1})

	if v.Size() != 3 {
		t.Errorf("Size() = %d, want 3", v.Size())
	}
	if v.Dataset() != Dataset(ds) {
		t.Error("Dataset() should return the underlying dataset")
	}

	// Duplicates map to the same sample.
	if v.SampleAt(1).Features[0] != 2 || v.SampleAt(2).Features[0] != 2 {
		t.Error("duplicate indices should map to the same dataset sample")
	}
	if v.SampleAt(0).Target != 1 {
		t.Errorf("SampleAt(0).Target = %v, want 1", v.SampleAt(0).Target)
	}
	if v.Index(0) != 3 {
		t.Errorf("Index(0) = %d, want 3", v.Index(0))
	}

	idx := v.Indices()
	idx[0] = 0
	if v.Index(0) != 3 {
		t.Error("Indices() must return a copy")
	}

	if err := v.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestView_ValidateOutOfRange(t *testing.T) {
	ds := newTestDataset(t)

	for _, idx := range [][]int{{0, 4}, {-1}} {
		err := NewView(ds, idx).Validate()
		var rangeErr *forestErrors.IndexRangeError
		if !forestErrors.As(err, &rangeErr) {
			t.Errorf("indices %v: expected IndexRangeError, got %v", idx, err)
		}
	}
}

func TestView_Empty(t *testing.T) {
	v := NewView(newTestDataset(t), nil)
	if v.Size() != 0 {
		t.Errorf("Size() = %d, want 0", v.Size())
	}
	if err := v.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
