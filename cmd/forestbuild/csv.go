package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/forestgo/dataset"
	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
)

// loadCSV reads a numeric CSV file whose last column is the target.
func loadCSV(path string, header bool) (*dataset.MatrixDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, forestErrors.Wrapf(err, "forestgo: opening %s", path)
	}
	defer f.Close()
	return readCSV(f, header)
}

func readCSV(r io.Reader, header bool) (*dataset.MatrixDataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, forestErrors.Wrap(err, "forestgo: reading csv")
	}
	if header && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, forestErrors.WithStack(forestErrors.ErrEmptyData)
	}

	cols := len(records[0])
	if cols < 2 {
		return nil, forestErrors.Newf("forestgo: csv needs at least one feature and a target column, got %d columns", cols)
	}

	X := mat.NewDense(len(records), cols-1, nil)
	y := mat.NewVecDense(len(records), nil)
	for i, rec := range records {
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, forestErrors.Wrapf(err, "forestgo: csv row %d column %d", i+1, j+1)
			}
			if j == cols-1 {
				y.SetVec(i, v)
			} else {
				X.Set(i, j, v)
			}
		}
	}
	return dataset.NewMatrixDataset(X, y)
}
