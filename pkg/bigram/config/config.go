package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/bigram/pkg/bigram/ingest"
	"github.com/cognicore/bigram/pkg/bigram/internalerr"
	"github.com/cognicore/bigram/pkg/bigram/subsets"
)

// Store drivers accepted in configuration.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config is the top-level YAML configuration
type Config struct {
	Store        StoreConfig        `yaml:"store"`
	Stoplist     string             `yaml:"stoplist"`
	Segmentation SegmentationConfig `yaml:"segmentation"`
	Estimation   EstimationConfig   `yaml:"estimation"`
}

// StoreConfig selects where counts are kept
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// SegmentationConfig controls how documents become corpus units
type SegmentationConfig struct {
	Mode       string `yaml:"mode"`
	WindowSize int    `yaml:"window_size"`
}

// EstimationConfig holds estimator defaults
type EstimationConfig struct {
	MinFrequency int64  `yaml:"min_frequency"`
	Scheme       string `yaml:"scheme"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: DriverSQLite,
			Path:   "bigram.db",
		},
		Segmentation: SegmentationConfig{
			Mode:       ingest.ModeDocument,
			WindowSize: 10,
		},
		Estimation: EstimationConfig{
			MinFrequency: 1,
			Scheme:       "one-one",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for sqlite: %w", internalerr.ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store.driver %q: %w", c.Store.Driver, internalerr.ErrInvalidConfig)
	}

	if _, err := ingest.NewSegmenter(c.Segmentation.Mode, c.Segmentation.WindowSize); err != nil {
		return fmt.Errorf("segmentation: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	if c.Estimation.MinFrequency < 0 {
		return fmt.Errorf("estimation.min_frequency %d is negative: %w", c.Estimation.MinFrequency, internalerr.ErrInvalidConfig)
	}
	if _, err := subsets.SchemeByName(c.Estimation.Scheme); err != nil {
		return fmt.Errorf("estimation.scheme: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
