// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akrishnanDG/schema-infer-plugin/internal/config"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate/avro"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate/jsonschema"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate/protobuf"
)

func testTranslators() translate.Register {
	return translate.NewRegister(&jsonschema.Translator{}, &avro.Translator{}, &protobuf.Translator{})
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(testTranslators())

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestInfer_StdinToStdout(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, stderr, err := execute(t, "{\"id\":1,\"name\":\"a\"}\n{\"id\":2,\"name\":\"b\"}\n", "infer", "--name", "users")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "users", doc["title"])
	assert.Equal(t, "Auto-generated schema for users", doc["description"])
	assert.Contains(t, stderr, "Successfully inferred 1 schema(s) as json-schema")
	assert.Contains(t, stderr, "users:")
}

func TestInfer_FilesToDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "orders.jsonl", "{\"id\":1,\"total\":9.5}\n{\"id\":2,\"total\":3}\n")
	writeFile(t, "people.csv", "name,age\nalice,30\nbob,41\n")

	stdout, stderr, err := execute(t, "", "infer", "orders.jsonl", "people.csv", "--format", "avro", "--output", "out")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Successfully inferred 2 schema(s) as avro")

	for _, name := range []string{"orders", "people"} {
		content, err := os.ReadFile(filepath.Join(dir, "out", name+".avsc")) //nolint:gosec // test file path
		require.NoError(t, err)
		assert.Contains(t, string(content), `"type": "record"`)
	}
}

func TestInfer_DuplicateSourceNames(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "a/orders.jsonl", "{\"id\":1}\n")
	writeFile(t, "b/orders.jsonl", "{\"sku\":\"x\"}\n")

	_, _, err := execute(t, "", "infer", "a/orders.jsonl", "b/orders.jsonl", "--format", "protobuf")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, DefaultOutputDir, "orders.proto"))
	assert.FileExists(t, filepath.Join(dir, DefaultOutputDir, "orders_2.proto"))
}

func TestInfer_ReportsFailedSources(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "good.jsonl", "{\"ok\":true}\n")
	writeFile(t, "blob.bin", "\xff\xfe\x01\n\x80\x81\n")

	_, stderr, err := execute(t, "", "infer", "good.jsonl", "blob.bin", "--output", "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to infer 1 schema(s)")
	assert.Contains(t, stderr, "blob:")
	assert.Contains(t, stderr, "all messages are binary")
	assert.FileExists(t, filepath.Join(dir, "out", "good.json"))
}

func TestInfer_NameNeedsSingleInput(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "", "infer", "a.jsonl", "b.jsonl", "--name", "x")
	assert.EqualError(t, err, "--name requires a single input")
}

func TestInfer_UnknownFormat(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "{\"a\":1}\n", "infer", "--format", "xml")
	var uerr *translate.UnsupportedFormatError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, []string{"avro", "json-schema", "protobuf"}, uerr.Available)
}

func TestInfer_InvalidPolicyFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "{\"a\":1}\n", "infer", "--array-handling", "merge")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestInfer_ConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, config.FileName, "version: 1\noutput:\n  format: protobuf\ninference:\n  namespace: com.acme\n")

	stdout, _, err := execute(t, "{\"a\":1}\n", "infer")
	require.NoError(t, err)
	assert.Contains(t, stdout, `syntax = "proto3";`)
	assert.Contains(t, stdout, "package com.acme;")

	stdout, _, err = execute(t, "{\"a\":1}\n", "infer", "--format", "avro")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"namespace": "com.acme"`)
}

func TestInfer_ForcedDataFormat(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := execute(t, "host=web1,port=8080\n", "infer", "--data-format", "key-value", "--name", "hosts")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "host")
	assert.Contains(t, props, "port")
}

func TestFormats(t *testing.T) {
	stdout, _, err := execute(t, "", "formats")
	require.NoError(t, err)

	assert.Contains(t, stdout, "avro")
	assert.Contains(t, stdout, ".avsc")
	assert.Contains(t, stdout, ".proto")
	assert.Contains(t, stdout, "key-value")
	assert.Contains(t, stdout, "raw-text")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := execute(t, "", "config", "init", "--non-interactive", "--format", "avro", "--namespace", "com.acme")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "avro", cfg.Output.Format)
	assert.Equal(t, "com.acme", cfg.Inference.Namespace)
	assert.Equal(t, config.DefaultMaxMessages, cfg.Inference.MaxMessages)

	_, _, err = execute(t, "", "config", "init", "--non-interactive")
	assert.ErrorContains(t, err, "already exists")

	_, _, err = execute(t, "", "config", "init", "--non-interactive", "--force", "--format", "protobuf")
	require.NoError(t, err)
	cfg, err = config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "protobuf", cfg.Output.Format)
}

func TestConfigInit_UnknownFormat(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "", "config", "init", "--non-interactive", "--format", "xml")
	var uerr *translate.UnsupportedFormatError
	assert.ErrorAs(t, err, &uerr)
}

func TestConfigShow(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCHEMA_INFER_MAX_MESSAGES", "7")

	stdout, _, err := execute(t, "", "config", "show", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, stdout, "max_messages: 7")
	assert.Contains(t, stdout, "level: warn")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "schema-infer version")

	stdout, _, err = execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "schema-infer")
}
