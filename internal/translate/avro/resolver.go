// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package avro provides Apache Avro schema translation utilities.
package avro

import (
	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

type resolver struct{}

func (r *resolver) PrimitiveType(ft schema.FieldType) (string, bool) {
	switch ft.Kind {
	case schema.KindString:
		return "string", true
	case schema.KindInteger:
		if ft.Wide {
			return "long", true
		}
		return "int", true
	case schema.KindFloat:
		return "double", true
	case schema.KindBoolean:
		return "boolean", true
	default:
		return "", false
	}
}

func (r *resolver) FormatRootName(name string) string {
	return translate.TypeName(name, "Record")
}

func (r *resolver) FormatTypeName(fieldName string) string {
	return fieldName + "_record"
}

func (r *resolver) WrapNestedArrays() bool {
	return false
}
