// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package protobuf provides Protocol Buffers (proto3) schema translation utilities.
package protobuf

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

//go:embed protobuf.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "protobuf.go.tmpl"))

const (
	structType    = "google.protobuf.Struct"
	listValueType = "google.protobuf.ListValue"
	structImport  = "google/protobuf/struct.proto"
)

// Translator translates inferred schemas to Protocol Buffers (proto3) message definitions.
type Translator struct{}

// Name returns the format identifier.
func (t *Translator) Name() string {
	return "protobuf"
}

// FileExtension returns the file extension for Protocol Buffers files.
func (t *Translator) FileExtension() string {
	return "proto"
}

type protoFile struct {
	Package string
	Imports []string
	Root    protoMessage
}

type protoMessage struct {
	Indent  string
	Name    string
	Comment string
	Nested  []protoMessage
	Fields  []protoField
}

type protoField struct {
	Repeated bool
	Type     string
	Name     string
	Number   int
	Comment  string
}

// Translate converts an inferred schema to a proto3 file.
func (t *Translator) Translate(s *schema.InferredSchema) ([]byte, error) {
	data, err := translate.Prepare(s, &resolver{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	b := &builder{imports: make(map[string]bool)}
	file := protoFile{
		Package: formatPackage(data.Namespace),
		Root:    b.message(data.Root, data.Description, ""),
	}
	for imp := range b.imports {
		file.Imports = append(file.Imports, imp)
	}
	sort.Strings(file.Imports)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "protobuf.go.tmpl", file); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}

// builder turns prepared type definitions into template data and collects
// the imports the rendered types need.
type builder struct {
	imports map[string]bool
}

// message renders def. Types referenced by its fields are declared as
// nested messages in field order.
func (b *builder) message(def translate.TypeDef, comment, indent string) protoMessage {
	m := protoMessage{
		Indent:  indent,
		Name:    def.Name,
		Comment: oneLine(comment),
	}
	for _, f := range def.Fields {
		pf := protoField{
			Name:    f.Name,
			Number:  f.Number,
			Comment: oneLine(f.Description),
		}

		target := f
		if f.Kind == schema.KindArray && !f.Opaque && f.Elem != nil {
			pf.Repeated = true
			target = *f.Elem
		}
		pf.Type = b.fieldType(target)
		if target.Ref != nil {
			m.Nested = append(m.Nested, b.message(*target.Ref, "", indent+"  "))
		}
		m.Fields = append(m.Fields, pf)
	}
	return m
}

func (b *builder) fieldType(f translate.Field) string {
	switch f.Kind {
	case schema.KindObject:
		if f.Ref != nil {
			return f.Ref.Name
		}
		b.imports[structImport] = true
		return structType
	case schema.KindArray:
		// Nested arrays are wrapped by Prepare, so only opaque arrays get here.
		b.imports[structImport] = true
		return listValueType
	default:
		return f.Type
	}
}

// formatPackage makes every dotted segment of ns a valid proto identifier.
func formatPackage(ns string) string {
	if ns == "" {
		return ""
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		parts[i] = translate.Sanitize(p)
	}
	return strings.Join(parts, ".")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
