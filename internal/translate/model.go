// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package translate

import "github.com/akrishnanDG/schema-infer-plugin/internal/schema"

// SchemaData is the sanitized, name-resolved form of a schema handed to
// translators that need identifier-safe names.
type SchemaData struct {
	Root        TypeDef
	Namespace   string
	Description string
}

// TypeDef represents a named record or message type.
type TypeDef struct {
	Name   string  // unique formatted name, e.g. "address_record"
	Fields []Field // ordered fields
}

// Field represents a single member of a TypeDef, or an array element.
type Field struct {
	Name        string      // sanitized name, unique within its TypeDef
	Original    string      // name as observed in the samples
	Kind        schema.Kind // resolved kind
	Type        string      // target primitive type; empty for objects and arrays
	Nullable    bool
	Required    bool
	Description string
	Ref         *TypeDef // nested type for objects
	Elem        *Field   // member shape for arrays
	Opaque      bool     // structure not retained; render as a free-form value
	Number      int      // field number, for formats that need one
}
