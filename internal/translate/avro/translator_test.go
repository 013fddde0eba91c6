// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package avro

import (
	"encoding/json"
	"errors"
	"testing"

	havro "github.com/hamba/avro/v2"
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

func translateJSON(t *testing.T, s *schema.InferredSchema) (map[string]any, []byte) {
	t.Helper()
	output, err := (&Translator{}).Translate(s)
	require.NoError(t, err)

	_, err = havro.Parse(string(output))
	require.NoError(t, err, "generated schema must be valid Avro:\n%s", output)

	var result map[string]any
	require.NoError(t, json.Unmarshal(output, &result))
	return result, output
}

func TestTranslator_Metadata(t *testing.T) {
	tr := &Translator{}
	assert.Equal(t, "avro", tr.Name())
	assert.Equal(t, "avsc", tr.FileExtension())

	var _ translate.Translator = tr
}

func TestTranslate_SimpleRecord(t *testing.T) {
	s := inferSchema(t, "users",
		map[string]any{"name": "alice", "age": 30},
		map[string]any{"name": "bob", "age": 41},
	)

	result, _ := translateJSON(t, s)

	assert.Equal(t, "record", result["type"])
	assert.Equal(t, "Users", result["name"])
	assert.Equal(t, "com.example", result["namespace"])
	assert.Equal(t, "Auto-generated schema for users", result["doc"])

	fieldTypes := extractFieldTypes(result["fields"].([]any))
	assert.Equal(t, "string", fieldTypes["name"])
	assert.Equal(t, "int", fieldTypes["age"])
}

func TestTranslate_AllPrimitiveTypes(t *testing.T) {
	s := inferSchema(t, "types",
		map[string]any{"str": "x", "int": 1, "big": int64(1) << 40, "num": 1.5, "flag": true},
	)

	result, _ := translateJSON(t, s)

	fieldTypes := extractFieldTypes(result["fields"].([]any))
	assert.Equal(t, "string", fieldTypes["str"])
	assert.Equal(t, "int", fieldTypes["int"])
	assert.Equal(t, "long", fieldTypes["big"])
	assert.Equal(t, "double", fieldTypes["num"])
	assert.Equal(t, "boolean", fieldTypes["flag"])
}

func TestTranslate_NullableField(t *testing.T) {
	s := inferSchema(t, "users",
		map[string]any{"id": 1, "email": "a@example.com"},
		map[string]any{"id": 2, "email": nil},
	)

	result, _ := translateJSON(t, s)

	fields := result["fields"].([]any)
	email := fieldByName(fields, "email")
	require.NotNil(t, email)
	assert.Equal(t, []any{"null", "string"}, email["type"])
	assert.Contains(t, email, "default")
	assert.Nil(t, email["default"])

	id := fieldByName(fields, "id")
	require.NotNil(t, id)
	assert.Equal(t, "int", id["type"])
	assert.NotContains(t, id, "default")
}

func TestTranslate_NestedRecord(t *testing.T) {
	s := inferSchema(t, "events", map[string]any{
		"a":      1,
		"nested": map[string]any{"b": "x"},
	})

	result, output := translateJSON(t, s)

	parsed, err := havro.Parse(string(output))
	require.NoError(t, err)
	rec, ok := parsed.(*havro.RecordSchema)
	require.True(t, ok)
	assert.Equal(t, "com.example.Events", rec.FullName())
	require.Len(t, rec.Fields(), 2)
	assert.Equal(t, havro.Record, rec.Fields()[1].Type().Type())

	nested := fieldByName(result["fields"].([]any), "nested")
	require.NotNil(t, nested)
	nestedType := nested["type"].(map[string]any)
	assert.Equal(t, "record", nestedType["type"])
	assert.Equal(t, "nested_record", nestedType["name"])
}

func TestTranslate_ArrayTypes(t *testing.T) {
	s := inferSchema(t, "items", map[string]any{
		"tags":   []any{"a", "b"},
		"matrix": []any{[]any{1, 2}, []any{3}},
		"points": []any{map[string]any{"x": 1.0}},
	})

	result, _ := translateJSON(t, s)
	fields := result["fields"].([]any)

	tags := fieldByName(fields, "tags")["type"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, "string", tags["items"])

	matrix := fieldByName(fields, "matrix")["type"].(map[string]any)
	inner := matrix["items"].(map[string]any)
	assert.Equal(t, "array", inner["type"])
	assert.Equal(t, "int", inner["items"])

	points := fieldByName(fields, "points")["type"].(map[string]any)
	item := points["items"].(map[string]any)
	assert.Equal(t, "record", item["type"])
	assert.Equal(t, "points_record", item["name"])
}

func TestTranslate_RecordNamesUniqueInDocument(t *testing.T) {
	s := inferSchema(t, "doc", map[string]any{
		"meta":  map[string]any{"v": 1},
		"child": map[string]any{"meta": map[string]any{"v": 2}},
	})

	_, output := translateJSON(t, s)
	assert.Contains(t, string(output), `"name": "meta_record"`)
	assert.Contains(t, string(output), `"name": "meta_record_2"`)
}

func TestTranslate_SanitizedNames(t *testing.T) {
	s := inferSchema(t, "order-events", map[string]any{
		"User ID":  "u1",
		"user_id":  "u2",
		"2fa":      true,
		"e-mail":   "x@example.com",
		"Zip.Code": "12345",
	})

	result, _ := translateJSON(t, s)
	assert.Equal(t, "OrderEvents", result["name"])

	names := extractFieldNames(result["fields"].([]any))
	assert.ElementsMatch(t, []string{"user_id", "user_id_2", "_2fa", "e_mail", "zip_code"}, names)
}

func TestTranslate_OpaqueFields(t *testing.T) {
	opts := infer.DefaultOptions()
	opts.MaxDepth = 1
	s, err := infer.Infer([]map[string]any{{
		"obj": map[string]any{"a": 1},
		"arr": []any{1, 2},
	}}, "opaque", opts)
	require.NoError(t, err)

	result, _ := translateJSON(t, s)
	fields := result["fields"].([]any)

	obj := fieldByName(fields, "obj")["type"].(map[string]any)
	assert.Equal(t, "map", obj["type"])
	assert.Equal(t, "string", obj["values"])

	arr := fieldByName(fields, "arr")["type"].(map[string]any)
	assert.Equal(t, "array", arr["type"])
	assert.Equal(t, "string", arr["items"])
}

func TestTranslate_VariantsDocumented(t *testing.T) {
	opts := infer.DefaultOptions()
	opts.ArrayHandling = infer.ArrayAll
	s, err := infer.Infer([]map[string]any{
		{"mixed": []any{1, 2, "a"}},
	}, "variants", opts)
	require.NoError(t, err)

	result, _ := translateJSON(t, s)
	mixed := fieldByName(result["fields"].([]any), "mixed")
	require.NotNil(t, mixed)
	assert.Contains(t, mixed["doc"], "also observed: string")
}

func TestTranslate_UnsupportedKind(t *testing.T) {
	s := &schema.InferredSchema{
		Name: "bad",
		Fields: []schema.SchemaField{
			{Name: "n", Type: schema.FieldType{Kind: schema.KindNull}},
		},
	}

	_, err := (&Translator{}).Translate(s)
	var typeErr *translate.UnsupportedTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "n", typeErr.Field)
}

func TestTranslate_Deterministic(t *testing.T) {
	s := inferSchema(t, "orders",
		map[string]any{"id": 1, "items": []any{map[string]any{"sku": "a", "qty": 2}}},
	)

	first, err := (&Translator{}).Translate(s)
	require.NoError(t, err)
	second, err := (&Translator{}).Translate(s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func fieldByName(fields []any, name string) map[string]any {
	for _, f := range fields {
		fm := f.(map[string]any)
		if fm["name"] == name {
			return fm
		}
	}
	return nil
}

func extractFieldNames(fields []any) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.(map[string]any)["name"].(string))
	}
	return names
}

func extractFieldTypes(fields []any) map[string]any {
	types := make(map[string]any, len(fields))
	for _, f := range fields {
		fm := f.(map[string]any)
		types[fm["name"].(string)] = fm["type"]
	}
	return types
}
