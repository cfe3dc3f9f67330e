package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
)

func writeDataset(t *testing.T, rows int) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("x0,x1,label\n")
	for i := 0; i < rows; i++ {
		x0 := i % 10
		label := 0
		if x0 >= 5 {
			label = 1
		}
		fmt.Fprintf(&sb, "%d,%d,%d\n", x0, (i*7)%3, label)
	}
	path := filepath.Join(t.TempDir(), "train.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	ds, err := readCSV(strings.NewReader("a,b,y\n1, 2, 0\n# comment\n3,4,1\n"), true)
	if err != nil {
		t.Fatalf("readCSV failed: %v", err)
	}
	if ds.Size() != 2 || ds.NumFeatures() != 2 {
		t.Fatalf("shape = (%d, %d), want (2, 2)", ds.Size(), ds.NumFeatures())
	}
	s := ds.SampleAt(1)
	if s.Features[0] != 3 || s.Features[1] != 4 || s.Target != 1 {
		t.Errorf("sample 1 = %+v", s)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		header bool
	}{
		{"header only", "a,b\n", true},
		{"single column", "1\n2\n", false},
		{"not a number", "1,x\n", false},
		{"ragged rows", "1,2\n1,2,3\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := readCSV(strings.NewReader(tt.input), tt.header); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := readCSV(strings.NewReader(""), false); !errors.Is(err, forestErrors.ErrEmptyData) {
		t.Errorf("empty input error = %v, want ErrEmptyData", err)
	}
}

func TestRun(t *testing.T) {
	data := writeDataset(t, 60)
	dir := t.TempDir()
	plotPath := filepath.Join(dir, "coverage.png")
	metricsPath := filepath.Join(dir, "forest.prom")

	var stderr bytes.Buffer
	err := run(context.Background(), []string{
		"--data", data,
		"--header",
		"--trees", "4",
		"--sampling", "uniform_partition",
		"--seed", "3",
		"--max-depth", "3",
		"--log-format", "json",
		"--log-level", "debug",
		"--coverage-plot", plotPath,
		"--metrics-file", metricsPath,
	}, &stderr)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, stderr.String())
	}

	if n := strings.Count(stderr.String(), "Tree summary"); n != 4 {
		t.Errorf("logged %d tree summaries, want 4", n)
	}

	if info, err := os.Stat(plotPath); err != nil || info.Size() == 0 {
		t.Errorf("coverage plot missing: %v", err)
	}
	metrics, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(metrics), `forest_builds_total{state="succeeded"} 1`) {
		t.Errorf("metrics file does not record the build:\n%s", metrics)
	}
	if !strings.Contains(stderr.String(), "Uniformly splitting data between trees.") {
		t.Errorf("missing sampling diagnostic in:\n%s", stderr.String())
	}
}

func TestRun_Errors(t *testing.T) {
	data := writeDataset(t, 5)
	tests := []struct {
		name string
		args []string
	}{
		{"missing data", []string{"--trees", "2"}},
		{"too many trees", []string{"--data", data, "--header", "--trees", "10", "--log-format", "json"}},
		{"unknown sampling", []string{"--data", data, "--sampling", "boosting"}},
		{"unknown flag", []string{"--data", data, "--bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if err := run(context.Background(), tt.args, &stderr); err == nil {
				t.Error("expected an error")
			}
		})
	}

	var stderr bytes.Buffer
	err := run(context.Background(), []string{"--data", data, "--header", "--trees", "10", "--log-format", "json"}, &stderr)
	var pre *forestErrors.PreconditionError
	if !errors.As(err, &pre) {
		t.Errorf("error = %v, want PreconditionError", err)
	}
	if !strings.Contains(stderr.String(), "greater than the number of training samples") {
		t.Errorf("missing precondition warning in:\n%s", stderr.String())
	}
}
