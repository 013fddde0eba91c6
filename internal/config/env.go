// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the overlay.
const EnvPrefix = "SCHEMA_INFER"

type overrideKey struct {
	key     string
	aliases []string // short environment names kept from older releases
	apply   func(c *Config, v *viper.Viper, key string) error
}

var overrideKeys = []overrideKey{
	{key: "inference.max_messages", aliases: []string{"MAX_MESSAGES"}, apply: func(c *Config, v *viper.Viper, key string) error {
		return setInt(&c.Inference.MaxMessages, v, key)
	}},
	{key: "inference.timeout", aliases: []string{"TIMEOUT"}, apply: func(c *Config, v *viper.Viper, key string) error {
		d, err := parseTimeout(v.GetString(key))
		if err != nil {
			return err
		}
		c.Inference.Timeout = d
		return nil
	}},
	{key: "inference.sample_size", apply: func(c *Config, v *viper.Viper, key string) error {
		return setInt(&c.Inference.SampleSize, v, key)
	}},
	{key: "inference.confidence_threshold", apply: func(c *Config, v *viper.Viper, key string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return err
		}
		c.Inference.ConfidenceThreshold = f
		return nil
	}},
	{key: "inference.max_depth", apply: func(c *Config, v *viper.Viper, key string) error {
		return setInt(&c.Inference.MaxDepth, v, key)
	}},
	{key: "inference.array_handling", apply: func(c *Config, v *viper.Viper, key string) error {
		c.Inference.ArrayHandling = v.GetString(key)
		return nil
	}},
	{key: "inference.null_handling", apply: func(c *Config, v *viper.Viper, key string) error {
		c.Inference.NullHandling = v.GetString(key)
		return nil
	}},
	{key: "inference.data_format", apply: func(c *Config, v *viper.Viper, key string) error {
		c.Inference.DataFormat = v.GetString(key)
		return nil
	}},
	{key: "inference.namespace", apply: func(c *Config, v *viper.Viper, key string) error {
		c.Inference.Namespace = v.GetString(key)
		return nil
	}},
	{key: "output.format", apply: func(c *Config, v *viper.Viper, key string) error {
		c.Output.Format = v.GetString(key)
		return nil
	}},
	{key: "output.dir", apply: func(c *Config, v *viper.Viper, key string) error {
		c.Output.Dir = v.GetString(key)
		return nil
	}},
	{key: "performance.max_workers", apply: func(c *Config, v *viper.Viper, key string) error {
		return setInt(&c.Performance.MaxWorkers, v, key)
	}},
	{key: "logging.level", aliases: []string{"LOG_LEVEL"}, apply: func(c *Config, v *viper.Viper, key string) error {
		c.Logging.Level = strings.ToLower(v.GetString(key))
		return nil
	}},
	{key: "logging.format", apply: func(c *Config, v *viper.Viper, key string) error {
		c.Logging.Format = strings.ToLower(v.GetString(key))
		return nil
	}},
}

// Keys returns every configuration key the overlay understands, in file
// order. Flags bound to these keys with BindPFlag take part in the overlay.
func Keys() []string {
	keys := make([]string, len(overrideKeys))
	for i, k := range overrideKeys {
		keys[i] = k.key
	}
	return keys
}

// NewViper returns a viper instance bound to the SCHEMA_INFER_* environment.
// Every key is read from SCHEMA_INFER_<SECTION>_<NAME>; a few keys also
// accept a short alias such as SCHEMA_INFER_MAX_MESSAGES.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range overrideKeys {
		names := []string{k.key, envName(k.key)}
		for _, alias := range k.aliases {
			names = append(names, EnvPrefix+"_"+alias)
		}
		_ = v.BindEnv(names...)
	}
	return v
}

// ApplyOverrides copies every key set in v onto c. Only explicitly set
// values are applied: environment variables, changed flags, or values set
// directly on v.
func (c *Config) ApplyOverrides(v *viper.Viper) error {
	for _, k := range overrideKeys {
		if !v.IsSet(k.key) {
			continue
		}
		if err := k.apply(c, v, k.key); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, k.key, err)
		}
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func setInt(dst *int, v *viper.Viper, key string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

// parseTimeout accepts Go durations ("30s", "1m") and bare numbers, which
// are read as seconds.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}
