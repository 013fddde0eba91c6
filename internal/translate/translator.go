// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package translate renders inferred schemas into target schema languages.
package translate

import (
	"sort"

	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
)

// Translator defines the interface all format translators must implement.
// Implementations are stateless and never modify the schema they render.
type Translator interface {
	// Name returns the translator's format identifier (e.g., "avro", "protobuf")
	Name() string

	// Translate renders the schema tree in the target format
	Translate(s *schema.InferredSchema) ([]byte, error)

	// FileExtension returns the conventional file extension without a dot (e.g., "avsc")
	FileExtension() string
}

// Register maps format identifiers to translators.
type Register map[string]Translator

// NewRegister returns a Register holding the given translators.
func NewRegister(translators ...Translator) Register {
	r := make(Register, len(translators))
	for _, t := range translators {
		r.Add(t)
	}
	return r
}

// Add registers t under its name, replacing any previous entry.
func (r Register) Add(t Translator) {
	r[t.Name()] = t
}

// Get retrieves a translator by format identifier.
func (r Register) Get(name string) (Translator, error) {
	t, ok := r[name]
	if !ok {
		return nil, &UnsupportedFormatError{Format: name, Available: r.Available()}
	}
	return t, nil
}

// Available returns all registered format identifiers, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
