// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package infer

import "github.com/akrishnanDG/schema-infer-plugin/internal/schema"

// Infer folds records into a new Accumulator and resolves the result.
// The only possible error is an invalid Options value.
func Infer(records []map[string]any, name string, opts Options, ropts ...ResolverOption) (*schema.InferredSchema, error) {
	acc, err := NewAccumulator(opts)
	if err != nil {
		return nil, err
	}
	r, err := NewResolver(opts, ropts...)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		acc.Observe(rec)
	}
	return r.Resolve(acc, name, len(records)), nil
}
