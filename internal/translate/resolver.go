// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package translate

import "github.com/akrishnanDG/schema-infer-plugin/internal/schema"

// TypeResolver maps schema kinds to target type strings and naming conventions.
// Each translator that uses Prepare implements this interface.
type TypeResolver interface {
	// PrimitiveType maps a scalar field type to a target type string.
	// It reports false for kinds the target cannot represent.
	PrimitiveType(ft schema.FieldType) (string, bool)

	// FormatRootName formats the root type name from the schema name.
	FormatRootName(name string) string

	// FormatTypeName formats the name of a nested type synthesized for the
	// given sanitized field name (e.g. "address" -> "address_record").
	FormatTypeName(fieldName string) string

	// WrapNestedArrays reports whether an array whose members are arrays must
	// be expressed through an intermediate named type.
	WrapNestedArrays() bool
}
