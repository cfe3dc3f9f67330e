package main

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/forestgo/dataset"
	"github.com/YuminosukeSato/forestgo/random"
	"github.com/YuminosukeSato/forestgo/sampling"
)

// coverage replays the sampling of a build seeded with seed and counts how many
// trees received each sample. The builder draws from a source seeded the same
// way before any training, so the views are identical.
func coverage(ds dataset.Dataset, numTrees int, strategy sampling.Strategy, seed uint64) ([]int, error) {
	views, err := sampling.Sample(ds, numTrees, strategy, random.New(seed))
	if err != nil {
		return nil, err
	}
	return sampling.Coverage(views, ds.Size()), nil
}

// saveCoveragePlot writes a bar chart of how many samples were given to 0, 1,
// 2, ... trees. The image format follows the file extension.
func saveCoveragePlot(path string, cov []int, strategy sampling.Strategy, numTrees int) error {
	values := make([]float64, len(cov))
	for i, c := range cov {
		values[i] = float64(c)
	}

	freq := make(plotter.Values, int(floats.Max(values))+1)
	for _, c := range cov {
		freq[c]++
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sample coverage (%s, %d trees)", strategy, numTrees)
	p.X.Label.Text = "trees containing the sample"
	p.Y.Label.Text = "samples"

	bars, err := plotter.NewBarChart(freq, vg.Points(8))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
