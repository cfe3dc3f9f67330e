// Command forestbuild trains a decision forest on a CSV dataset.
//
// Usage:
//
//	forestbuild --data train.csv [--config forest.yaml] [--trees 50] [--sampling bagging]
//	            [--coverage-plot coverage.png] [--metrics-file forest.prom]
//
// The last CSV column is the class label. Settings are read from the config
// file, then FOREST_* environment variables, then flags.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/YuminosukeSato/forestgo/config"
	"github.com/YuminosukeSato/forestgo/forest"
	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
	"github.com/YuminosukeSato/forestgo/pkg/log"
	"github.com/YuminosukeSato/forestgo/tree"
)

type cliOptions struct {
	configPath   string
	dataPath     string
	header       bool
	plotPath     string
	metricsPath  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		log.GetLogger().Error("forestbuild failed", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := pflag.NewFlagSet("forestbuild", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts cliOptions
	fs.StringVar(&opts.configPath, "config", "", "config file (yaml, toml or json)")
	fs.StringVar(&opts.dataPath, "data", "", "training data CSV, last column is the label")
	fs.BoolVar(&opts.header, "header", false, "skip the first CSV row")
	fs.StringVar(&opts.plotPath, "coverage-plot", "", "write a sample coverage chart (png, svg or pdf)")
	fs.StringVar(&opts.metricsPath, "metrics-file", "", "write build metrics in the Prometheus text format")
	config.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.dataPath == "" {
		return forestErrors.New("forestgo: --data is required")
	}

	conf, err := config.Load(opts.configPath, fs)
	if err != nil {
		return err
	}
	if err := log.SetupLogger(conf.Log.Level, conf.Log.Format, stderr); err != nil {
		return err
	}
	logger := log.GetLoggerWithName("forestbuild")

	params, err := conf.ToParameters()
	if err != nil {
		return err
	}

	ds, err := loadCSV(opts.dataPath, opts.header)
	if err != nil {
		return err
	}
	logger.Info("Loaded training data",
		log.SamplesKey, ds.Size(),
		log.FeaturesKey, ds.NumFeatures(),
	)

	reg := prometheus.NewRegistry()
	metrics, err := forest.NewMetrics(reg)
	if err != nil {
		return err
	}

	b, err := forest.NewBuilder(params, tree.NewTrainer,
		forest.WithLogger(log.GetLoggerWithName("forest.builder")),
		forest.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	buildErr := b.Build(ctx, ds)
	report := b.Report()
	logger.Info("Build report",
		log.BuildStateKey, report.State.String(),
		log.SamplingStrategyKey, report.Strategy.String(),
		log.TreeCountKey, report.NumTrees,
		log.TrainedTreesKey, report.Trained,
		log.FailedTreesKey, report.FailedTrees,
		log.DurationSecondsKey, report.Elapsed.Seconds(),
	)

	if opts.metricsPath != "" {
		if err := prometheus.WriteToTextfile(opts.metricsPath, reg); err != nil {
			logger.Warn("Could not write metrics file", err)
		}
	}

	// A build rejected before sampling has no coverage to plot.
	if opts.plotPath != "" && report.State.IsTerminal() {
		cov, err := coverage(ds, params.NumTrees, params.Sampling, params.Seed)
		if err != nil {
			return err
		}
		if err := saveCoveragePlot(opts.plotPath, cov, params.Sampling, params.NumTrees); err != nil {
			return forestErrors.Wrap(err, "forestgo: writing coverage plot")
		}
		logger.Info("Wrote coverage plot", "path", opts.plotPath)
	}

	if buildErr != nil {
		return buildErr
	}

	f, err := b.CompleteForest()
	if err != nil {
		return err
	}
	for i, t := range f.Trees() {
		logger.Debug("Tree summary",
			log.TreeIndexKey, i,
			log.TreeDepthKey, t.Depth(),
			log.TreeNodesKey, t.NumNodes(),
		)
	}
	return nil
}
