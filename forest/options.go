package forest

import (
	"github.com/YuminosukeSato/forestgo/pkg/log"
	"github.com/YuminosukeSato/forestgo/random"
)

type options struct {
	logger  log.Logger
	src     random.Source
	clock   Clock
	metrics *Metrics
	workers *int
}

// Option configures a Builder.
type Option func(*options)

// WithLogger sets the logger that receives build diagnostics.
// The default is log.GetLoggerWithName("forest.builder").
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRandomSource sets the random source used for sampling.
// The default is random.New(params.Seed).
func WithRandomSource(src random.Source) Option {
	return func(o *options) {
		o.src = src
	}
}

// WithClock sets the clock used to time builds.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithMetrics records build outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithWorkers overrides Parameters.Workers.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = &n
	}
}
