package forest

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/YuminosukeSato/forestgo/core/model"
)

// Tree outcome label values.
const (
	outcomeTrained = "trained"
	outcomeFailed  = "failed"
	outcomeSkipped = "skipped"
)

// statePrecondition is the builds_total label for builds rejected before sampling.
const statePrecondition = "precondition_violation"

// Metrics holds the prometheus collectors updated by a Builder.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	treesTrained  *prometheus.CounterVec
	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	treeDuration  prometheus.Histogram
}

// NewMetrics creates the forest collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		treesTrained: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forest_trees_trained_total",
			Help: "Number of tree training attempts by outcome.",
		}, []string{"outcome"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forest_builds_total",
			Help: "Number of forest builds by final state.",
		}, []string{"state"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "forest_build_duration_seconds",
			Help:    "Wall time of forest builds from first to last tree.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		treeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "forest_tree_train_duration_seconds",
			Help:    "Wall time of single tree training calls.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.treesTrained, m.builds, m.buildDuration, m.treeDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeTree(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.treesTrained.WithLabelValues(outcome).Inc()
	if outcome != outcomeSkipped {
		m.treeDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) observeBuild(state model.BuildState, d time.Duration) {
	if m == nil {
		return
	}
	m.builds.WithLabelValues(state.String()).Inc()
	m.buildDuration.Observe(d.Seconds())
}

func (m *Metrics) observePrecondition() {
	if m == nil {
		return
	}
	m.builds.WithLabelValues(statePrecondition).Inc()
}
