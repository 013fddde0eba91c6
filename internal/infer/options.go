// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package infer derives a schema tree from sample records.
//
// Inference runs in two phases. An Accumulator folds records one at a time
// into per-path statistics; a Resolver then turns those statistics into an
// immutable schema.InferredSchema. Neither phase performs I/O.
package infer

import (
	"fmt"
	"math"
	"strings"
)

// ArrayHandling selects how element observations of array fields are merged.
type ArrayHandling string

// Array handling strategies.
const (
	ArrayUnion ArrayHandling = "union"
	ArrayFirst ArrayHandling = "first"
	ArrayAll   ArrayHandling = "all"
)

// NullHandling selects how null and absent observations affect nullability
// and requiredness.
type NullHandling string

// Null handling strategies.
const (
	NullOptional NullHandling = "optional"
	NullRequired NullHandling = "required"
	NullIgnore   NullHandling = "ignore"
)

// Default option values.
const (
	DefaultMaxDepth            = 10
	DefaultConfidenceThreshold = 0.8
)

// MaxExamples is the number of distinct example literals kept per field.
const MaxExamples = 5

// Options configures accumulation and resolution.
type Options struct {
	MaxDepth            int
	ConfidenceThreshold float64
	ArrayHandling       ArrayHandling
	NullHandling        NullHandling
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxDepth:            DefaultMaxDepth,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		ArrayHandling:       ArrayUnion,
		NullHandling:        NullOptional,
	}
}

// Validate checks every option and returns a *ConfigError naming the first
// offending one.
func (o Options) Validate() error {
	if o.MaxDepth < 1 {
		return &ConfigError{Option: "max_depth", Value: o.MaxDepth, Reason: "must be a positive integer"}
	}
	if o.ConfidenceThreshold < 0 || o.ConfidenceThreshold > 1 || math.IsNaN(o.ConfidenceThreshold) {
		return &ConfigError{Option: "confidence_threshold", Value: o.ConfidenceThreshold, Reason: "must be within [0, 1]"}
	}
	switch o.ArrayHandling {
	case ArrayUnion, ArrayFirst, ArrayAll:
	default:
		return arrayHandlingError(string(o.ArrayHandling))
	}
	switch o.NullHandling {
	case NullOptional, NullRequired, NullIgnore:
	default:
		return nullHandlingError(string(o.NullHandling))
	}
	return nil
}

// ParseArrayHandling converts a configuration string to an ArrayHandling.
func ParseArrayHandling(s string) (ArrayHandling, error) {
	switch h := ArrayHandling(strings.ToLower(s)); h {
	case ArrayUnion, ArrayFirst, ArrayAll:
		return h, nil
	}
	return "", arrayHandlingError(s)
}

// ParseNullHandling converts a configuration string to a NullHandling.
func ParseNullHandling(s string) (NullHandling, error) {
	switch h := NullHandling(strings.ToLower(s)); h {
	case NullOptional, NullRequired, NullIgnore:
		return h, nil
	}
	return "", nullHandlingError(s)
}

func arrayHandlingError(v string) *ConfigError {
	return &ConfigError{
		Option: "array_handling",
		Value:  v,
		Reason: fmt.Sprintf("must be one of %s, %s, %s", ArrayUnion, ArrayFirst, ArrayAll),
	}
}

func nullHandlingError(v string) *ConfigError {
	return &ConfigError{
		Option: "null_handling",
		Value:  v,
		Reason: fmt.Sprintf("must be one of %s, %s, %s", NullOptional, NullRequired, NullIgnore),
	}
}
