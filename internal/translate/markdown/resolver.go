// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package markdown provides markdown schema documentation utilities.
package markdown

import (
	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

type resolver struct{}

func (r *resolver) PrimitiveType(ft schema.FieldType) (string, bool) {
	switch ft.Kind {
	case schema.KindString, schema.KindFloat, schema.KindBoolean:
		return string(ft.Kind), true
	case schema.KindInteger:
		if ft.Wide {
			return "integer (64-bit)", true
		}
		return "integer", true
	default:
		return "", false
	}
}

func (r *resolver) FormatRootName(name string) string {
	return translate.TypeName(name, "Schema")
}

func (r *resolver) FormatTypeName(fieldName string) string {
	return translate.TypeName(fieldName, "Object")
}

func (r *resolver) WrapNestedArrays() bool {
	return false
}
