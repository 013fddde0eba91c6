// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package markdown

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

//go:embed markdown.md.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.ParseFS(tmplFS, "markdown.md.tmpl"))

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "`", "'")

// Translator renders inferred schemas as markdown documentation.
type Translator struct{}

// Name returns the format identifier.
func (t *Translator) Name() string {
	return "markdown"
}

// FileExtension returns the file extension for markdown files.
func (t *Translator) FileExtension() string {
	return "md"
}

type document struct {
	Title       string
	Description string
	Namespace   string
	Root        table
	Nested      []table
}

type table struct {
	Name string
	Rows []row
}

type row struct {
	Name        string
	Type        string
	Required    string
	Nullable    string
	Description string
}

// Translate converts an inferred schema to markdown documentation. Each
// nested object gets its own section, linked from the field that holds it.
func (t *Translator) Translate(s *schema.InferredSchema) ([]byte, error) {
	data, err := translate.Prepare(s, &resolver{})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare schema data: %w", err)
	}

	doc := &document{
		Title:       data.Root.Name,
		Description: cell(data.Description),
		Namespace:   data.Namespace,
	}
	doc.Root = doc.table(data.Root)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "markdown.md.tmpl", doc); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	out := bytes.TrimSpace(buf.Bytes())
	return append(out, '\n'), nil
}

// table builds the rows of def, appending the sections of nested types
// depth-first in field order.
func (d *document) table(def translate.TypeDef) table {
	tbl := table{Name: def.Name, Rows: make([]row, 0, len(def.Fields))}
	for _, f := range def.Fields {
		tbl.Rows = append(tbl.Rows, row{
			Name:        cell(f.Original),
			Type:        d.typeOf(f),
			Required:    yesNo(f.Required),
			Nullable:    yesNo(f.Nullable),
			Description: cell(f.Description),
		})
	}
	return tbl
}

func (d *document) typeOf(f translate.Field) string {
	switch f.Kind {
	case schema.KindObject:
		if f.Opaque || f.Ref == nil {
			return "object"
		}
		// Reserve the slot before recursing so sections follow link order.
		// The recursion appends to d.Nested, so the index is written only
		// after it returns.
		idx := len(d.Nested)
		d.Nested = append(d.Nested, table{})
		tbl := d.table(*f.Ref)
		d.Nested[idx] = tbl
		return "[" + f.Ref.Name + "](#" + anchor(f.Ref.Name) + ")"
	case schema.KindArray:
		if f.Opaque || f.Elem == nil {
			return "array"
		}
		return "array(" + d.typeOf(*f.Elem) + ")"
	default:
		return f.Type
	}
}

// anchor returns the GitHub heading anchor of a type name.
func anchor(name string) string {
	return strings.ToLower(name)
}

func cell(s string) string {
	return cellEscaper.Replace(s)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
