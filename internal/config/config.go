// Package config loads the corrprune command configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/gocollinear/correlation"
	"github.com/sartorproj/gocollinear/dataset"
	"github.com/sartorproj/gocollinear/internal/logging"
	"github.com/sartorproj/gocollinear/prune"
)

// Config holds all corrprune configuration.
type Config struct {
	// Correlation statistic: spearman, pearson or kendall
	Method correlation.Method `yaml:"method"`
	// Absolute correlation above which the later column of a pair is dropped
	Threshold float64 `yaml:"threshold"`

	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig configures CSV loading.
type InputConfig struct {
	Columns   []string `yaml:"columns,omitempty"` // load only these columns
	Exclude   []string `yaml:"exclude,omitempty"` // e.g. target or ID columns
	Delimiter string   `yaml:"delimiter"`
	NoHeader  bool     `yaml:"no_header,omitempty"`
	SkipRows  int      `yaml:"skip_rows,omitempty"`
}

// OutputConfig configures where the pruned dataset is written.
type OutputConfig struct {
	Path string `yaml:"path,omitempty"` // empty means stdout
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Method:    prune.DefaultMethod,
		Threshold: prune.DefaultThreshold,
		Input: InputConfig{
			Delimiter: ",",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate validates the configuration. The threshold is deliberately not
// range-checked: values >= 1 keep everything and values <= 0 keep only the
// first column.
func (c *Config) Validate() error {
	if !c.Method.Valid() {
		return fmt.Errorf("%w: %d", correlation.ErrUnknownMethod, int(c.Method))
	}
	if utf8.RuneCountInString(c.Input.Delimiter) > 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	if c.Input.SkipRows < 0 {
		return fmt.Errorf("skip_rows must not be negative, got %d", c.Input.SkipRows)
	}
	return logging.Validate(c.Logging.Level, c.Logging.Format)
}

// CSVOptions returns the dataset loading options.
func (c *Config) CSVOptions() *dataset.CSVOptions {
	opts := dataset.DefaultCSVOptions()
	opts.Columns = c.Input.Columns
	opts.Exclude = c.Input.Exclude
	opts.HasHeader = !c.Input.NoHeader
	opts.SkipRows = c.Input.SkipRows
	if r, _ := utf8.DecodeRuneInString(c.Input.Delimiter); r != utf8.RuneError {
		opts.Delimiter = r
	}
	return opts
}

// PruneConfig returns the pruner configuration.
func (c *Config) PruneConfig(logger *zap.Logger) *prune.Config {
	return &prune.Config{
		Method:    c.Method,
		Threshold: c.Threshold,
		Logger:    logger,
	}
}
