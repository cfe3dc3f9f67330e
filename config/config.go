// Package config loads forest build settings from a config file, FOREST_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/forestgo/forest"
	forestErrors "github.com/YuminosukeSato/forestgo/pkg/errors"
	"github.com/YuminosukeSato/forestgo/sampling"
	"github.com/YuminosukeSato/forestgo/tree"
)

// EnvPrefix is the prefix of environment overrides, e.g. FOREST_FOREST_NUM_TREES.
const EnvPrefix = "FOREST"

// FileConfig is the full configuration of a forest build.
type FileConfig struct {
	Forest ForestConfig `mapstructure:"forest"`
	Tree   TreeConfig   `mapstructure:"tree"`
	Log    LogConfig    `mapstructure:"log"`
}

// ForestConfig holds the builder settings.
type ForestConfig struct {
	NumTrees int    `mapstructure:"num_trees" validate:"required,min=1"`
	Sampling string `mapstructure:"sampling"  validate:"oneof=uniform_partition constant bagging"`
	Seed     uint64 `mapstructure:"seed"`
	Workers  int    `mapstructure:"workers"   validate:"min=0"`
}

// TreeConfig holds the reference tree trainer settings.
type TreeConfig struct {
	MaxDepth        int `mapstructure:"max_depth"         validate:"min=0"`
	MinSamplesSplit int `mapstructure:"min_samples_split" validate:"min=0"`
	MaxFeatures     int `mapstructure:"max_features"      validate:"min=0"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console cloud"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"trees":             "forest.num_trees",
	"sampling":          "forest.sampling",
	"seed":              "forest.seed",
	"workers":           "forest.workers",
	"max-depth":         "tree.max_depth",
	"min-samples-split": "tree.min_samples_split",
	"max-features":      "tree.max_features",
	"log-level":         "log.level",
	"log-format":        "log.format",
}

// RegisterFlags defines the override flags on fs. Flags only take effect
// when set explicitly.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("trees", 10, "number of trees in the forest")
	fs.String("sampling", sampling.Bagging.String(), "sampling strategy: uniform_partition, constant or bagging")
	fs.Uint64("seed", 0, "random seed")
	fs.Int("workers", 0, "trees trained concurrently (0 or 1: sequential)")
	fs.Int("max-depth", 0, "maximum tree depth (0: unlimited)")
	fs.Int("min-samples-split", 2, "minimum samples required to split a node")
	fs.Int("max-features", 0, "features evaluated per split (0: all)")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-format", "console", "log format: json, console or cloud")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("forest.num_trees", 10)
	v.SetDefault("forest.sampling", sampling.Bagging.String())
	v.SetDefault("forest.seed", 0)
	v.SetDefault("forest.workers", 0)
	v.SetDefault("tree.max_depth", 0)
	v.SetDefault("tree.min_samples_split", 2)
	v.SetDefault("tree.max_features", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path (optional), applies environment and flag
// overrides and validates the result. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*FileConfig, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, forestErrors.Wrapf(err, "forestgo: reading config %s", path)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, forestErrors.Wrapf(err, "forestgo: binding flag %s", name)
			}
		}
	}

	var conf FileConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, forestErrors.Wrap(err, "forestgo: unmarshal config")
	}
	conf.Forest.Sampling = strings.ToLower(conf.Forest.Sampling)
	conf.Log.Level = strings.ToLower(conf.Log.Level)

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks the struct tags of c.
func (c *FileConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return forestErrors.Wrap(err, "forestgo: config validation failed")
	}
	return nil
}

// ToParameters converts c into builder parameters for the reference tree trainer.
func (c *FileConfig) ToParameters() (*forest.Parameters[tree.Params], error) {
	strategy, err := sampling.ParseStrategy(c.Forest.Sampling)
	if err != nil {
		return nil, err
	}
	params := &forest.Parameters[tree.Params]{
		NumTrees: c.Forest.NumTrees,
		Sampling: strategy,
		Seed:     c.Forest.Seed,
		Workers:  c.Forest.Workers,
		Tree: tree.Params{
			MaxDepth:        c.Tree.MaxDepth,
			MinSamplesSplit: c.Tree.MinSamplesSplit,
			MaxFeatures:     c.Tree.MaxFeatures,
		},
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := params.Tree.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}
