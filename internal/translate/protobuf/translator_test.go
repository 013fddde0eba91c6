// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package protobuf

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/emicklei/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akrishnanDG/schema-infer-plugin/internal/infer"
	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

func inferSchema(t *testing.T, name string, records ...map[string]any) *schema.InferredSchema {
	t.Helper()
	s, err := infer.Infer(records, name, infer.DefaultOptions(), infer.WithNamespace("com.example"))
	require.NoError(t, err)
	return s
}

// parsed is a flattened view of a parsed .proto file.
type parsed struct {
	syntax   string
	pkg      string
	imports  []string
	messages map[string]*proto.Message
}

func translateProto(t *testing.T, s *schema.InferredSchema) (*parsed, string) {
	t.Helper()
	output, err := (&Translator{}).Translate(s)
	require.NoError(t, err)

	def, err := proto.NewParser(strings.NewReader(string(output))).Parse()
	require.NoError(t, err, "generated file must parse:\n%s", output)

	p := &parsed{messages: make(map[string]*proto.Message)}
	for _, e := range def.Elements {
		switch v := e.(type) {
		case *proto.Syntax:
			p.syntax = v.Value
		case *proto.Package:
			p.pkg = v.Name
		case *proto.Import:
			p.imports = append(p.imports, v.Filename)
		case *proto.Message:
			collectMessages(v, p.messages)
		}
	}
	return p, string(output)
}

func collectMessages(m *proto.Message, into map[string]*proto.Message) {
	into[m.Name] = m
	for _, e := range m.Elements {
		if nested, ok := e.(*proto.Message); ok {
			collectMessages(nested, into)
		}
	}
}

func fields(m *proto.Message) map[string]*proto.NormalField {
	result := make(map[string]*proto.NormalField)
	for _, e := range m.Elements {
		if f, ok := e.(*proto.NormalField); ok {
			result[f.Name] = f
		}
	}
	return result
}

func TestTranslator_Metadata(t *testing.T) {
	tr := &Translator{}
	assert.Equal(t, "protobuf", tr.Name())
	assert.Equal(t, "proto", tr.FileExtension())

	var _ translate.Translator = tr
}

func TestTranslate_SimpleMessage(t *testing.T) {
	s := inferSchema(t, "users", map[string]any{"name": "alice", "age": 30})

	p, output := translateProto(t, s)

	assert.Equal(t, "proto3", p.syntax)
	assert.Equal(t, "com.example", p.pkg)
	assert.Empty(t, p.imports)
	assert.Contains(t, output, "// Auto-generated schema for users")

	users := p.messages["Users"]
	require.NotNil(t, users)
	fs := fields(users)
	assert.Equal(t, "int32", fs["age"].Type)
	assert.Equal(t, 1, fs["age"].Sequence)
	assert.Equal(t, "string", fs["name"].Type)
	assert.Equal(t, 2, fs["name"].Sequence)
}

func TestTranslate_AllPrimitiveTypes(t *testing.T) {
	s := inferSchema(t, "types",
		map[string]any{"str": "x", "int": 1, "big": int64(1) << 40, "num": 1.5, "flag": true},
	)

	p, _ := translateProto(t, s)
	fs := fields(p.messages["Types"])

	assert.Equal(t, "string", fs["str"].Type)
	assert.Equal(t, "int32", fs["int"].Type)
	assert.Equal(t, "int64", fs["big"].Type)
	assert.Equal(t, "double", fs["num"].Type)
	assert.Equal(t, "bool", fs["flag"].Type)
}

func TestTranslate_NestedMessageTags(t *testing.T) {
	s := inferSchema(t, "event", map[string]any{"a": 1, "nested": map[string]any{"b": 2}})

	p, _ := translateProto(t, s)

	root := fields(p.messages["Event"])
	assert.Equal(t, 1, root["a"].Sequence)
	assert.Equal(t, 2, root["nested"].Sequence)
	assert.Equal(t, "nested_message", root["nested"].Type)

	nested := p.messages["nested_message"]
	require.NotNil(t, nested)
	assert.Equal(t, 1, fields(nested)["b"].Sequence)
}

func TestTranslate_NullableIsSingular(t *testing.T) {
	s := inferSchema(t, "users",
		map[string]any{"email": "a@example.com"},
		map[string]any{"email": nil},
	)

	p, output := translateProto(t, s)
	email := fields(p.messages["Users"])["email"]
	require.NotNil(t, email)
	assert.False(t, email.Optional)
	assert.False(t, email.Repeated)
	assert.NotContains(t, output, "optional")
}

func TestTranslate_Arrays(t *testing.T) {
	s := inferSchema(t, "items", map[string]any{
		"tags":   []any{"a", "b"},
		"points": []any{map[string]any{"x": 1.5}},
	})

	p, _ := translateProto(t, s)
	fs := fields(p.messages["Items"])

	assert.True(t, fs["tags"].Repeated)
	assert.Equal(t, "string", fs["tags"].Type)

	assert.True(t, fs["points"].Repeated)
	assert.Equal(t, "points_message", fs["points"].Type)
	require.NotNil(t, p.messages["points_message"])
	assert.Equal(t, "double", fields(p.messages["points_message"])["x"].Type)
}

func TestTranslate_NestedArraysWrapped(t *testing.T) {
	s := inferSchema(t, "grid", map[string]any{
		"matrix": []any{[]any{1, 2}, []any{3}},
	})

	p, _ := translateProto(t, s)

	matrix := fields(p.messages["Grid"])["matrix"]
	require.NotNil(t, matrix)
	assert.True(t, matrix.Repeated)
	assert.Equal(t, "matrix_message", matrix.Type)

	wrapper := p.messages["matrix_message"]
	require.NotNil(t, wrapper)
	items := fields(wrapper)["items"]
	require.NotNil(t, items)
	assert.True(t, items.Repeated)
	assert.Equal(t, "int32", items.Type)
	assert.Equal(t, 1, items.Sequence)
}

func TestTranslate_OpaqueFields(t *testing.T) {
	opts := infer.DefaultOptions()
	opts.MaxDepth = 1
	s, err := infer.Infer([]map[string]any{{
		"obj": map[string]any{"a": 1},
		"arr": []any{1, 2},
	}}, "opaque", opts)
	require.NoError(t, err)

	p, _ := translateProto(t, s)

	assert.Equal(t, []string{"google/protobuf/struct.proto"}, p.imports)
	fs := fields(p.messages["Opaque"])
	assert.Equal(t, "google.protobuf.Struct", fs["obj"].Type)
	assert.Equal(t, "google.protobuf.ListValue", fs["arr"].Type)
	assert.False(t, fs["arr"].Repeated)
}

func TestTranslate_NameScopes(t *testing.T) {
	s := inferSchema(t, "scopes", map[string]any{
		"nested":         map[string]any{"b": 1},
		"nested_message": "collides with the synthesized type name",
	})

	p, _ := translateProto(t, s)
	fs := fields(p.messages["Scopes"])

	assert.Equal(t, "string", fs["nested_message"].Type)
	assert.Equal(t, "nested_message_2", fs["nested"].Type)
	require.NotNil(t, p.messages["nested_message_2"])
}

func TestTranslate_ReservedTagRange(t *testing.T) {
	fieldsIn := make([]schema.SchemaField, 19001)
	for i := range fieldsIn {
		fieldsIn[i] = schema.SchemaField{
			Name:     "f" + strconv.Itoa(i),
			Type:     schema.FieldType{Kind: schema.KindBoolean},
			Required: true,
		}
	}
	data, err := translate.Prepare(&schema.InferredSchema{Name: "wide", Fields: fieldsIn}, &resolver{})
	require.NoError(t, err)

	last := data.Root.Fields[len(data.Root.Fields)-1]
	assert.Equal(t, 18999, data.Root.Fields[18998].Number)
	assert.Equal(t, 20000, data.Root.Fields[18999].Number)
	assert.Equal(t, 20001, last.Number)
}

func TestTranslate_NoNamespaceOmitsPackage(t *testing.T) {
	s, err := infer.Infer([]map[string]any{{"a": 1}}, "plain", infer.DefaultOptions())
	require.NoError(t, err)

	p, output := translateProto(t, s)
	assert.Empty(t, p.pkg)
	assert.NotContains(t, output, "package")
}

func TestTranslate_UnsupportedKind(t *testing.T) {
	s := &schema.InferredSchema{
		Name:   "bad",
		Fields: []schema.SchemaField{{Name: "n", Type: schema.FieldType{Kind: schema.KindNull}}},
	}

	_, err := (&Translator{}).Translate(s)
	var typeErr *translate.UnsupportedTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, schema.KindNull, typeErr.Kind)
}

func TestTranslate_Deterministic(t *testing.T) {
	s := inferSchema(t, "orders",
		map[string]any{"id": 1, "lines": []any{map[string]any{"sku": "a", "qty": 2}}},
	)

	first, err := (&Translator{}).Translate(s)
	require.NoError(t, err)
	second, err := (&Translator{}).Translate(s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
