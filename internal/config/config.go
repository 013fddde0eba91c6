// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package config handles schema-infer configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/akrishnanDG/schema-infer-plugin/internal/formats"
	"github.com/akrishnanDG/schema-infer-plugin/internal/infer"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the default configuration file name.
const FileName = "schema-infer.yaml"

// Defaults for a fresh configuration.
const (
	DefaultMaxMessages  = 50
	DefaultTimeout      = 20 * time.Second
	DefaultNamespace    = "com.schemainfer"
	DefaultOutputFormat = "json-schema"
	DefaultMaxWorkers   = 4
)

// ErrInvalidConfig indicates the configuration holds an invalid value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the schema-infer configuration file.
type Config struct {
	Version     int         `yaml:"version"`
	Inference   Inference   `yaml:"inference"`
	Output      Output      `yaml:"output"`
	Performance Performance `yaml:"performance"`
	Logging     Logging     `yaml:"logging"`
}

// Inference controls sampling and the inference policies.
type Inference struct {
	MaxMessages         int           `yaml:"max_messages"`
	Timeout             time.Duration `yaml:"timeout"`
	SampleSize          int           `yaml:"sample_size"`
	ConfidenceThreshold float64       `yaml:"confidence_threshold"`
	MaxDepth            int           `yaml:"max_depth"`
	ArrayHandling       string        `yaml:"array_handling"`
	NullHandling        string        `yaml:"null_handling"`
	DataFormat          string        `yaml:"data_format"`
	Namespace           string        `yaml:"namespace"`
}

// Output controls where and how schemas are written.
type Output struct {
	Format string `yaml:"format"`
	Dir    string `yaml:"dir,omitempty"`
}

// Performance controls concurrency.
type Performance struct {
	MaxWorkers int `yaml:"max_workers"`
}

// Logging controls the log output of the CLI.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	opts := infer.DefaultOptions()
	return &Config{
		Version: CurrentConfigVersion,
		Inference: Inference{
			MaxMessages:         DefaultMaxMessages,
			Timeout:             DefaultTimeout,
			SampleSize:          formats.DefaultSampleSize,
			ConfidenceThreshold: opts.ConfidenceThreshold,
			MaxDepth:            opts.MaxDepth,
			ArrayHandling:       string(opts.ArrayHandling),
			NullHandling:        string(opts.NullHandling),
			DataFormat:          string(formats.FormatAuto),
			Namespace:           DefaultNamespace,
		},
		Output: Output{
			Format: DefaultOutputFormat,
		},
		Performance: Performance{
			MaxWorkers: DefaultMaxWorkers,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a Config from a file path. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
// Every failure wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return fmt.Errorf("%w: unsupported config version %d", ErrInvalidConfig, c.Version)
	}
	if _, err := c.InferOptions(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Inference.MaxMessages < 1 {
		return fmt.Errorf("%w: inference.max_messages must be positive", ErrInvalidConfig)
	}
	if c.Inference.Timeout <= 0 {
		return fmt.Errorf("%w: inference.timeout must be positive", ErrInvalidConfig)
	}
	if c.Inference.SampleSize < 1 {
		return fmt.Errorf("%w: inference.sample_size must be positive", ErrInvalidConfig)
	}
	if _, err := formats.ParseFormat(c.Inference.DataFormat); err != nil {
		return fmt.Errorf("%w: inference.data_format: %w", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(c.Output.Format) == "" {
		return fmt.Errorf("%w: output.format is required", ErrInvalidConfig)
	}
	if c.Performance.MaxWorkers < 1 {
		return fmt.Errorf("%w: performance.max_workers must be positive", ErrInvalidConfig)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %w", ErrInvalidConfig, err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format must be text or json, got %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// InferOptions converts the inference section into validated policies.
func (c *Config) InferOptions() (infer.Options, error) {
	arrays, err := infer.ParseArrayHandling(c.Inference.ArrayHandling)
	if err != nil {
		return infer.Options{}, err
	}
	nulls, err := infer.ParseNullHandling(c.Inference.NullHandling)
	if err != nil {
		return infer.Options{}, err
	}
	opts := infer.Options{
		MaxDepth:            c.Inference.MaxDepth,
		ConfidenceThreshold: c.Inference.ConfidenceThreshold,
		ArrayHandling:       arrays,
		NullHandling:        nulls,
	}
	if err := opts.Validate(); err != nil {
		return infer.Options{}, err
	}
	return opts, nil
}

// DataFormat returns the configured message format.
func (c *Config) DataFormat() formats.Format {
	f, err := formats.ParseFormat(c.Inference.DataFormat)
	if err != nil {
		return formats.FormatAuto
	}
	return f
}
