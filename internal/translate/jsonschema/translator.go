// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package jsonschema renders inferred schemas as JSON Schema (draft 2020-12) documents.
package jsonschema

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

// Draft is the meta-schema every generated document declares.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Translator translates inferred schemas to JSON Schema.
// Field names are kept verbatim.
type Translator struct{}

// Name returns the format identifier.
func (t *Translator) Name() string {
	return "json-schema"
}

// FileExtension returns the file extension for JSON Schema files.
func (t *Translator) FileExtension() string {
	return "json"
}

// Translate converts an inferred schema to a JSON Schema document.
func (t *Translator) Translate(s *schema.InferredSchema) ([]byte, error) {
	root, err := Build(s)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON Schema: %w", err)
	}

	return append(out, '\n'), nil
}

// Build returns the JSON Schema model of s.
func Build(s *schema.InferredSchema) (*jsonschema.Schema, error) {
	root := &jsonschema.Schema{
		Schema:      Draft,
		Title:       s.Name,
		Description: s.Description,
		Type:        "object",
	}
	if err := buildProperties(root, s.Fields, ""); err != nil {
		return nil, err
	}
	return root, nil
}

// buildProperties fills the properties and required list of an object node.
// Properties marshal in discovery order. Nullable fields are never listed as
// required.
func buildProperties(node *jsonschema.Schema, fields []schema.SchemaField, path string) error {
	if len(fields) == 0 {
		return nil
	}
	node.Properties = make(map[string]*jsonschema.Schema, len(fields))
	for _, f := range fields {
		prop, err := buildField(f, joinPath(path, f.Name))
		if err != nil {
			return err
		}
		node.Properties[f.Name] = prop
		node.PropertyOrder = append(node.PropertyOrder, f.Name)
		if f.Required && !f.Type.Nullable {
			node.Required = append(node.Required, f.Name)
		}
	}
	return nil
}

func buildField(f schema.SchemaField, path string) (*jsonschema.Schema, error) {
	node := &jsonschema.Schema{Description: f.Description}

	switch f.Type.Kind {
	case schema.KindString:
		node.Type = "string"
	case schema.KindInteger:
		node.Type = "integer"
	case schema.KindFloat:
		node.Type = "number"
	case schema.KindBoolean:
		node.Type = "boolean"
	case schema.KindObject:
		node.Type = "object"
		if !f.Opaque {
			if err := buildProperties(node, f.Fields, path); err != nil {
				return nil, err
			}
		}
		return node, nil
	case schema.KindArray:
		node.Type = "array"
		if !f.Opaque {
			items, err := buildItems(f, path+"[]")
			if err != nil {
				return nil, err
			}
			node.Items = items
		}
		return node, nil
	default:
		return nil, &translate.UnsupportedTypeError{Field: path, Kind: f.Type.Kind}
	}

	if len(f.Examples) > 0 {
		node.Examples = append([]any(nil), f.Examples...)
	}
	return node, nil
}

// buildItems renders the member schema of an array. Multiple observed shapes
// become an anyOf in discovery order.
func buildItems(f schema.SchemaField, path string) (*jsonschema.Schema, error) {
	if len(f.Variants) > 1 {
		anyOf := make([]*jsonschema.Schema, 0, len(f.Variants))
		for _, v := range f.Variants {
			alt, err := buildField(v, path)
			if err != nil {
				return nil, err
			}
			anyOf = append(anyOf, alt)
		}
		return &jsonschema.Schema{AnyOf: anyOf}, nil
	}
	if f.Element == nil {
		return &jsonschema.Schema{Type: "string"}, nil
	}
	return buildField(*f.Element, path)
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
