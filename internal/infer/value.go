// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package infer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
)

// valueKind is the runtime kind of a single sample value.
type valueKind int

const (
	kindNull valueKind = iota
	kindBoolean
	kindInteger
	kindFloat
	kindString
	kindObject
	kindArray
	numKinds
)

// dominanceOrder breaks ties between equally frequent kinds.
var dominanceOrder = []valueKind{kindString, kindFloat, kindInteger, kindBoolean, kindObject, kindArray}

func (k valueKind) schemaKind() schema.Kind {
	switch k {
	case kindBoolean:
		return schema.KindBoolean
	case kindInteger:
		return schema.KindInteger
	case kindFloat:
		return schema.KindFloat
	case kindObject:
		return schema.KindObject
	case kindArray:
		return schema.KindArray
	case kindNull:
		return schema.KindNull
	default:
		return schema.KindString
	}
}

// classify returns the kind of v along with its scalar form: int64 for
// integers, float64 for floats, and the value itself otherwise.
func classify(v any) (valueKind, any) {
	switch val := v.(type) {
	case nil:
		return kindNull, nil
	case bool:
		return kindBoolean, val
	case int:
		return kindInteger, int64(val)
	case int8:
		return kindInteger, int64(val)
	case int16:
		return kindInteger, int64(val)
	case int32:
		return kindInteger, int64(val)
	case int64:
		return kindInteger, val
	case uint:
		return classifyUnsigned(uint64(val))
	case uint8:
		return kindInteger, int64(val)
	case uint16:
		return kindInteger, int64(val)
	case uint32:
		return kindInteger, int64(val)
	case uint64:
		return classifyUnsigned(val)
	case float32:
		return kindFloat, float64(val)
	case float64:
		return kindFloat, val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return kindInteger, i
		}
		if f, err := val.Float64(); err == nil {
			return kindFloat, f
		}
		return kindString, val.String()
	case string:
		return kindString, val
	case []any:
		return kindArray, val
	case map[string]any:
		return kindObject, val
	default:
		return kindString, fmt.Sprint(val)
	}
}

func classifyUnsigned(u uint64) (valueKind, any) {
	if u > math.MaxInt64 {
		return kindFloat, float64(u)
	}
	return kindInteger, int64(u)
}

// shapeKey identifies the structural shape of an array element for the
// "all" array strategy. Integers and floats share one shape.
func shapeKey(kind valueKind, v any) string {
	switch kind {
	case kindInteger, kindFloat:
		return "number"
	case kindObject:
		var sb strings.Builder
		sb.WriteString("object{")
		for i, k := range sortedKeys(v.(map[string]any)) {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
		}
		sb.WriteByte('}')
		return sb.String()
	default:
		return string(kind.schemaKind())
	}
}
