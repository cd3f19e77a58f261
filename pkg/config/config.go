package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every knob of a pipeline run. All fields have defaults that
// reproduce the canonical analysis; a yaml file overlays them.
type Config struct {
	Sources       SourcesConfig  `yaml:"sources"`
	CacheDir      string         `yaml:"cache_dir"`
	OutputDir     string         `yaml:"output_dir"`
	Log           LogConfig      `yaml:"log"`
	Seed          int64          `yaml:"seed"`
	LabelField    string         `yaml:"label_field"`
	TrainFraction float64        `yaml:"train_fraction"`
	MaxMissing    float64        `yaml:"max_missing_ratio"`
	Forest        ForestConfig   `yaml:"forest"`
	Boosting      BoostingConfig `yaml:"boosting"`
}

type SourcesConfig struct {
	Training    string `yaml:"training"`
	Application string `yaml:"application"`
}

type LogConfig struct {
	Path string `yaml:"path"`
}

type ForestConfig struct {
	Trees       int `yaml:"trees"`
	MaxFeatures int `yaml:"max_features"` // 0 => sqrt(feature count)
}

type BoostingConfig struct {
	Rounds       int     `yaml:"rounds"`
	MaxDepth     int     `yaml:"max_depth"`
	LearningRate float64 `yaml:"learning_rate"`
}

// Default returns the canonical run configuration: the public
// weight-lifting-exercise dataset, a 0.33 training fraction, and a fixed
// seed so the partition reproduces.
func Default() *Config {
	return &Config{
		Sources: SourcesConfig{
			Training:    "https://d396qusza40orc.cloudfront.net/predmachlearn/pml-training.csv",
			Application: "https://d396qusza40orc.cloudfront.net/predmachlearn/pml-testing.csv",
		},
		CacheDir:      "data",
		OutputDir:     "predictions",
		Log:           LogConfig{Path: "logs/weights.log"},
		Seed:          3433,
		LabelField:    "classe",
		TrainFraction: 0.33,
		MaxMissing:    0.95,
		Forest:        ForestConfig{Trees: 100},
		Boosting:      BoostingConfig{Rounds: 50, MaxDepth: 3, LearningRate: 0.1},
	}
}

// Load reads a yaml file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Sources.Training == "" || c.Sources.Application == "" {
		return fmt.Errorf("config: both source urls are required")
	}
	if c.TrainFraction <= 0 || c.TrainFraction >= 1 {
		return fmt.Errorf("config: train_fraction %v outside (0,1)", c.TrainFraction)
	}
	if c.MaxMissing <= 0 || c.MaxMissing > 1 {
		return fmt.Errorf("config: max_missing_ratio %v outside (0,1]", c.MaxMissing)
	}
	if c.LabelField == "" {
		return fmt.Errorf("config: label_field is required")
	}
	if c.Forest.Trees < 1 {
		return fmt.Errorf("config: forest.trees must be positive")
	}
	if c.Boosting.Rounds < 1 || c.Boosting.LearningRate <= 0 {
		return fmt.Errorf("config: boosting rounds and learning_rate must be positive")
	}
	return nil
}
