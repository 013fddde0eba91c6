// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package translate

import (
	"strconv"
	"strings"
)

// Sanitize converts a field name into an identifier valid in Avro and
// Protobuf: lowercased, every character outside [a-z0-9_] replaced with an
// underscore, and an underscore prefix when it would start with a digit.
func Sanitize(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	result := sb.String()
	if result == "" {
		return "_"
	}
	if result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	return result
}

// ToPascalCase converts a snake_case string to PascalCase for type name generation.
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var sb strings.Builder
	for _, part := range parts {
		if part != "" {
			sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}

	return sb.String()
}

// TypeName derives a PascalCase type name from an arbitrary schema name,
// falling back to fallback when nothing usable remains.
func TypeName(name, fallback string) string {
	result := ToPascalCase(Sanitize(name))
	if result == "" {
		return fallback
	}
	if result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	return result
}

// Namer hands out unique names within one scope. Collisions are resolved by
// appending _2, _3, ... in the order names are requested.
type Namer struct {
	used map[string]bool
}

// NewNamer returns an empty Namer.
func NewNamer() *Namer {
	return &Namer{used: make(map[string]bool)}
}

// Has reports whether name is already taken.
func (n *Namer) Has(name string) bool {
	return n.used[name]
}

// Reserve marks name as taken.
func (n *Namer) Reserve(name string) {
	n.used[name] = true
}

// Unique returns name, or the first free suffixed variant of it, and
// reserves the result.
func (n *Namer) Unique(name string) string {
	return n.uniqueAcross(name)
}

// uniqueAcross returns a name free in n and every other scope, reserving it
// in all of them.
func (n *Namer) uniqueAcross(name string, others ...*Namer) string {
	candidate := name
	for i := 2; n.taken(candidate, others); i++ {
		candidate = name + "_" + strconv.Itoa(i)
	}
	n.Reserve(candidate)
	for _, o := range others {
		o.Reserve(candidate)
	}
	return candidate
}

func (n *Namer) taken(name string, others []*Namer) bool {
	if n.Has(name) {
		return true
	}
	for _, o := range others {
		if o.Has(name) {
			return true
		}
	}
	return false
}
