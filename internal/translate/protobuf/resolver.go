// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package protobuf

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
			return "int64", true
		}
		return "int32", true
	case schema.KindFloat:
		return "double", true
	case schema.KindBoolean:
		return "bool", true
	default:
		return "", false
	}
}

func (r *resolver) FormatRootName(name string) string {
	return translate.TypeName(name, "Message")
}

func (r *resolver) FormatTypeName(fieldName string) string {
	return fieldName + "_message"
}

func (r *resolver) WrapNestedArrays() bool {
	return true
}
