// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by all experiments of one invocation.
type Config struct {
	ResourcePath  string `envconfig:"CLICKEXP_RESOURCE_PATH" yaml:"resource_path"`
	OutputPath    string `envconfig:"CLICKEXP_OUTPUT_PATH" yaml:"output_path"`
	SearchLogFile string `envconfig:"CLICKEXP_SEARCH_LOG_FILE" yaml:"search_log_file"`

	// SessionLimit caps the number of parsed sessions, 0 loads all
	SessionLimit int `envconfig:"CLICKEXP_SESSION_LIMIT" yaml:"session_limit"`

	EMIterations int `envconfig:"CLICKEXP_EM_ITERATIONS" yaml:"em_iterations"`

	// Parsed-session cache
	CacheDir string `envconfig:"CLICKEXP_CACHE_DIR" yaml:"cache_dir"`
	NoCache  bool   `envconfig:"CLICKEXP_NO_CACHE" yaml:"no_cache"`

	// Optional SQLite mirror of the performance ledger
	LedgerDB string `envconfig:"CLICKEXP_LEDGER_DB" yaml:"ledger_db"`

	Verbose bool `envconfig:"CLICKEXP_VERBOSE" yaml:"verbose"`
}

// Experiment is the immutable configuration of a single model run.
type Experiment struct {
	OutputPath    string
	SearchLogFile string
	ModelName     string
	SessionLimit  int
}

// DefaultEMIterations mirrors the model catalog default
const DefaultEMIterations = 50

// Load loads configuration: defaults, then the YAML file at configPath
// (when given), then CLICKEXP_* environment variables.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	setDefaults(cfg)

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func setDefaults(cfg *Config) {
	cfg.EMIterations = DefaultEMIterations
}

// Validate checks the configuration and fills derived defaults.
func (c *Config) Validate() error {
	var errs []error
	if c.OutputPath == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if c.SearchLogFile == "" {
		errs = append(errs, errors.New("search log file is required"))
	}
	if c.SessionLimit < 0 {
		errs = append(errs, fmt.Errorf("session limit must not be negative, got %d", c.SessionLimit))
	}
	if c.EMIterations < 1 {
		errs = append(errs, fmt.Errorf("em iterations must be positive, got %d", c.EMIterations))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	if c.CacheDir == "" {
		c.CacheDir = filepath.Join(c.ResourcePath, ".clickexp-cache")
	}
	return nil
}

// Experiment returns the run configuration of one model.
func (c *Config) Experiment(modelName string) Experiment {
	return Experiment{
		OutputPath:    c.OutputPath,
		SearchLogFile: c.SearchLogFile,
		ModelName:     modelName,
		SessionLimit:  c.SessionLimit,
	}
}
