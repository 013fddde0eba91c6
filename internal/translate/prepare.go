// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package translate

import (
	"strings"

	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
)

// Reserved protobuf field numbers; translators that number fields skip them.
const (
	reservedRangeStart = 19000
	reservedRangeEnd   = 19999
)

// prepareContext holds mutable state during schema preparation.
type prepareContext struct {
	resolver TypeResolver
	types    *Namer // every type name in the document
}

// Prepare converts a schema tree into a SchemaData ready for rendering.
// It sanitizes and deduplicates names, resolves primitive types using the
// provided TypeResolver and numbers fields in discovery order.
// Nested objects become named TypeDefs referenced from their field.
func Prepare(s *schema.InferredSchema, resolver TypeResolver) (*SchemaData, error) {
	ctx := &prepareContext{
		resolver: resolver,
		types:    NewNamer(),
	}

	rootName := resolver.FormatRootName(s.Name)
	ctx.types.Reserve(rootName)

	fields, err := ctx.resolveFields(s.Fields, "")
	if err != nil {
		return nil, err
	}

	return &SchemaData{
		Root:        TypeDef{Name: rootName, Fields: fields},
		Namespace:   s.Namespace,
		Description: s.Description,
	}, nil
}

func (c *prepareContext) resolveFields(src []schema.SchemaField, path string) ([]Field, error) {
	scope := NewNamer()
	names := make([]string, len(src))
	for i, sf := range src {
		names[i] = scope.Unique(Sanitize(sf.Name))
	}

	fields := make([]Field, 0, len(src))
	number := 0
	for i, sf := range src {
		f, err := c.resolveField(sf, names[i], joinPath(path, sf.Name), scope)
		if err != nil {
			return nil, err
		}
		number = nextFieldNumber(number)
		f.Number = number
		fields = append(fields, f)
	}
	return fields, nil
}

func (c *prepareContext) resolveField(sf schema.SchemaField, name, path string, scope *Namer) (Field, error) {
	f := Field{
		Name:        name,
		Original:    sf.Name,
		Kind:        sf.Type.Kind,
		Nullable:    sf.Type.Nullable,
		Required:    sf.Required,
		Description: sf.Description,
		Opaque:      sf.Opaque,
	}

	switch sf.Type.Kind {
	case schema.KindObject:
		if sf.Opaque {
			return f, nil
		}
		typeName := c.typeName(name, scope)
		fields, err := c.resolveFields(sf.Fields, path)
		if err != nil {
			return Field{}, err
		}
		f.Ref = &TypeDef{Name: typeName, Fields: fields}

	case schema.KindArray:
		if sf.Opaque {
			return f, nil
		}
		elem := sf.Element
		if elem == nil {
			elem = &schema.SchemaField{Name: sf.Name, Type: schema.FieldType{Kind: schema.KindString}, Required: true}
		}
		e, err := c.resolveElement(*elem, name, path+"[]", scope)
		if err != nil {
			return Field{}, err
		}
		f.Elem = &e
		if len(sf.Variants) > 1 {
			f.Description = appendNote(f.Description, variantNote(sf.Variants, *elem))
		}

	default:
		t, ok := c.resolver.PrimitiveType(sf.Type)
		if !ok {
			return Field{}, &UnsupportedTypeError{Field: path, Kind: sf.Type.Kind}
		}
		f.Type = t
	}

	return f, nil
}

// resolveElement resolves the member shape of an array. When the resolver
// asks for it, a member that is itself an array is moved into a synthesized
// type holding a single "items" field.
func (c *prepareContext) resolveElement(sf schema.SchemaField, name, path string, scope *Namer) (Field, error) {
	if sf.Type.Kind != schema.KindArray || sf.Opaque || !c.resolver.WrapNestedArrays() {
		e, err := c.resolveField(sf, name, path, scope)
		if err != nil {
			return Field{}, err
		}
		e.Required = true
		return e, nil
	}

	typeName := c.typeName(name, scope)
	inner := NewNamer()
	inner.Reserve("items")
	items, err := c.resolveField(sf, "items", path, inner)
	if err != nil {
		return Field{}, err
	}
	items.Required = true
	items.Number = 1

	return Field{
		Name:     name,
		Original: sf.Name,
		Kind:     schema.KindObject,
		Required: true,
		Ref:      &TypeDef{Name: typeName, Fields: []Field{items}},
	}, nil
}

// typeName allocates a nested type name that is unique in the document and
// does not clash with any field name of the scope declaring it.
func (c *prepareContext) typeName(fieldName string, scope *Namer) string {
	return c.types.uniqueAcross(c.resolver.FormatTypeName(fieldName), scope)
}

// nextFieldNumber returns the field number following n.
func nextFieldNumber(n int) int {
	n++
	if n >= reservedRangeStart && n <= reservedRangeEnd {
		n = reservedRangeEnd + 1
	}
	return n
}

// variantNote lists the element shapes other than the rendered one.
func variantNote(variants []schema.SchemaField, rendered schema.SchemaField) string {
	renderedLabel := shapeLabel(rendered)
	skipped := false
	others := make([]string, 0, len(variants)-1)
	for _, v := range variants {
		label := shapeLabel(v)
		if !skipped && label == renderedLabel {
			skipped = true
			continue
		}
		others = append(others, label)
	}
	return "also observed: " + strings.Join(others, ", ")
}

func shapeLabel(sf schema.SchemaField) string {
	if sf.Type.Kind != schema.KindObject || sf.Opaque {
		return string(sf.Type.Kind)
	}
	names := make([]string, len(sf.Fields))
	for i, f := range sf.Fields {
		names[i] = f.Name
	}
	return "object(" + strings.Join(names, ", ") + ")"
}

func appendNote(desc, note string) string {
	if desc == "" {
		return note
	}
	return desc + "; " + note
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
