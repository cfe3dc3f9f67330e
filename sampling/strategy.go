// Package sampling distributes the samples of a dataset across the trees of a forest.
//
// Three strategies are available:
//
//   - UniformPartition: a disjoint partition of a shuffled index sequence; subset
//     sizes differ by at most one and the larger subsets go to the lower tree indices.
//   - Constant: every tree sees every sample, each in its own random order.
//   - Bagging: every tree gets as many draws as there are samples, drawn uniformly
//     with replacement (bootstrap aggregating).
package sampling

import (
	"strings"

	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
)

// Strategy selects how samples are assigned to trees.
type Strategy int

const (
	// UniformPartition splits the data uniformly between trees.
	UniformPartition Strategy = iota
	// Constant passes all data to all trees.
	Constant
	// Bagging gives each tree a bootstrap sample of the full dataset size.
	Bagging
)

var strategyNames = map[Strategy]string{
	UniformPartition: "uniform_partition",
	Constant:         "constant",
	Bagging:          "bagging",
}

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// ParseStrategy parses a configuration name. Hyphens and case are ignored,
// so "Uniform-Partition" and "uniform_partition" are equivalent.
func ParseStrategy(name string) (Strategy, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for s, n := range strategyNames {
		if n == norm {
			return s, nil
		}
	}
	return 0, forestErrors.NewValidationError("sampling", "unknown sampling strategy", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, forestErrors.NewValidationError("sampling", "unknown sampling strategy", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
