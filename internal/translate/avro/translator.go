// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package avro

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

// Translator translates inferred schemas to Apache Avro schema definitions.
type Translator struct{}

// Name returns the format identifier.
func (t *Translator) Name() string {
	return "avro"
}

// FileExtension returns the file extension for Avro schema files.
func (t *Translator) FileExtension() string {
	return "avsc"
}

// avroRecord represents an Avro record schema.
type avroRecord struct {
	Type      string      `json:"type"`
	Name      string      `json:"name"`
	Namespace string      `json:"namespace,omitempty"`
	Doc       string      `json:"doc,omitempty"`
	Fields    []avroField `json:"fields"`
}

// avroField represents a field within an Avro record.
type avroField struct {
	Name    string          `json:"name"`
	Type    any             `json:"type"`
	Doc     string          `json:"doc,omitempty"`
	Default json.RawMessage `json:"default,omitempty"`
}

// avroArray represents an Avro array type.
type avroArray struct {
	Type  string `json:"type"`
	Items any    `json:"items"`
}

// avroMap represents an Avro map type.
type avroMap struct {
	Type   string `json:"type"`
	Values any    `json:"values"`
}

var nullDefault = json.RawMessage("null")

// Translate converts an inferred schema to an Avro schema JSON document.
func (t *Translator) Translate(s *schema.InferredSchema) ([]byte, error) {
	data, err := translate.Prepare(s, &resolver{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	root := avroRecord{
		Type:      "record",
		Name:      data.Root.Name,
		Namespace: formatNamespace(data.Namespace),
		Doc:       data.Description,
		Fields:    buildFields(data.Root.Fields),
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Avro schema: %w", err)
	}

	return append(out, '\n'), nil
}

// buildFields converts prepared fields to avroFields. Nested records are
// defined inline where they are used; Prepare guarantees unique names.
func buildFields(fields []translate.Field) []avroField {
	result := make([]avroField, 0, len(fields))
	for _, f := range fields {
		af := avroField{
			Name: f.Name,
			Type: buildAvroType(f),
			Doc:  f.Description,
		}
		if f.Nullable {
			af.Type = []any{"null", af.Type}
			af.Default = nullDefault
		}
		result = append(result, af)
	}
	return result
}

// buildAvroType converts a prepared field to an Avro type value.
func buildAvroType(f translate.Field) any {
	switch f.Kind {
	case schema.KindObject:
		if f.Opaque || f.Ref == nil {
			return avroMap{Type: "map", Values: "string"}
		}
		return avroRecord{
			Type:   "record",
			Name:   f.Ref.Name,
			Fields: buildFields(f.Ref.Fields),
		}
	case schema.KindArray:
		if f.Opaque || f.Elem == nil {
			return avroArray{Type: "array", Items: "string"}
		}
		items := buildAvroType(*f.Elem)
		if f.Elem.Nullable {
			items = []any{"null", items}
		}
		return avroArray{Type: "array", Items: items}
	default:
		return f.Type
	}
}

// formatNamespace makes every dotted segment of ns a valid Avro name.
func formatNamespace(ns string) string {
	if ns == "" {
		return ""
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		parts[i] = translate.Sanitize(p)
	}
	return strings.Join(parts, ".")
}
