// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package schema defines the dialect-independent schema tree produced by
// inference and consumed by every translator.
package schema

// Kind is the resolved type of a field.
type Kind string

// Resolved kinds. Translators must render every kind except KindNull.
const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindBoolean Kind = "boolean"
	KindNull    Kind = "null"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// IsComposite reports whether values of this kind carry nested structure.
func (k Kind) IsComposite() bool {
	return k == KindObject || k == KindArray
}

// FieldType is the resolved type of a field.
type FieldType struct {
	Kind       Kind
	Nullable   bool
	Confidence float64 // fraction of non-null observations agreeing with Kind
	Examples   []any
	Wide       bool // an observed integer does not fit in 32 bits
}

// SchemaField is one node of the schema tree. Each field owns its children.
type SchemaField struct {
	Name        string
	Type        FieldType
	Required    bool
	Description string
	Examples    []any
	Default     any

	// Fields holds object members in discovery order.
	Fields []SchemaField

	// Element describes array members.
	Element *SchemaField

	// Variants lists every distinct element shape when more than one was
	// observed. Element is always one of them.
	Variants []SchemaField

	// Opaque marks an object or array whose structure was not expanded
	// because the depth limit was reached.
	Opaque bool
}

// InferredSchema is the root of the schema tree.
type InferredSchema struct {
	Name        string
	Namespace   string
	Description string
	Fields      []SchemaField
}

// Depth returns the deepest nesting level in the schema. Top-level fields
// are at depth 1; object members and array elements add one level.
func (s *InferredSchema) Depth() int {
	maxDepth := 0
	for i := range s.Fields {
		if d := s.Fields[i].depth(1); d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

func (f *SchemaField) depth(level int) int {
	deepest := level
	for i := range f.Fields {
		if d := f.Fields[i].depth(level + 1); d > deepest {
			deepest = d
		}
	}
	if f.Element != nil {
		if d := f.Element.depth(level + 1); d > deepest {
			deepest = d
		}
	}
	for i := range f.Variants {
		if d := f.Variants[i].depth(level + 1); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Field returns the direct member with the given name, or nil.
func (f *SchemaField) Field(name string) *SchemaField {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// Field returns the top-level field with the given name, or nil.
func (s *InferredSchema) Field(name string) *SchemaField {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}
