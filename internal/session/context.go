// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package session provides configuration and logger loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/akrishnanDG/schema-infer-plugin/internal/config"
	"github.com/akrishnanDG/schema-infer-plugin/internal/logging"
)

var (
	// ErrConfigNotFound indicates an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = config.ErrInvalidConfig

	// ErrNotLoaded indicates a command ran without a loaded session.
	ErrNotLoaded = errors.New("session not loaded")
)

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved configuration and the logger built from it.
type Context struct {
	// Config is the fully resolved configuration (file, environment and flags).
	Config *config.Config

	// ConfigPath is the file the configuration was read from, empty when
	// only defaults were used.
	ConfigPath string

	Logger *logrus.Logger
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigPath is an explicit config file. When empty, schema-infer.yaml in
	// the working directory is used if present.
	ConfigPath string

	// Viper supplies environment and flag overrides. May be nil.
	Viper *viper.Viper

	// LogOutput receives log entries. Defaults to os.Stderr.
	LogOutput io.Writer
}

// Load resolves the configuration and returns a new context.Context with the
// session Context stored in it.
func Load(ctx context.Context, opts LoadOptions) (context.Context, error) {
	path, err := configPath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if opts.Viper != nil {
		if err := cfg.ApplyOverrides(opts.Viper); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger, err := logging.New(cfg.Logging, out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if path != "" {
		logger.WithField("path", path).Debug("loaded configuration")
	}

	s := &Context{
		Config:     cfg,
		ConfigPath: path,
		Logger:     logger,
	}
	return context.WithValue(ctx, contextKey{}, s), nil
}

// configPath returns the config file to read, or "" when none applies.
func configPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, explicit)
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	path := filepath.Join(cwd, config.FileName)
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if ctx == nil {
		return nil
	}
	if s, ok := ctx.Value(contextKey{}).(*Context); ok {
		return s
	}
	return nil
}
