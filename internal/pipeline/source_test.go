// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSource(t *testing.T) {
	in := "{\"a\":1}\r\n\n   \n{\"a\":2}\n{\"a\":3}"

	src, err := ReadSource("events", strings.NewReader(in), 0)
	require.NoError(t, err)
	assert.Equal(t, "events", src.Name)
	assert.Equal(t, lines(`{"a":1}`, `{"a":2}`, `{"a":3}`), src.Messages)
}

func TestReadSource_Limit(t *testing.T) {
	src, err := ReadSource("events", strings.NewReader("a\nb\nc\n"), 2)
	require.NoError(t, err)
	assert.Equal(t, lines("a", "b"), src.Messages)
}

func TestReadSource_TooLong(t *testing.T) {
	long := strings.Repeat("x", MaxMessageSize+1)
	_, err := ReadSource("huge", strings.NewReader(long), 0)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"id\":1}\n{\"id\":2}\n"), 0o600))

	src, err := LoadFile(path, 1)
	require.NoError(t, err)
	assert.Equal(t, "user-events", src.Name)
	assert.Len(t, src.Messages, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.jsonl"), 0)
	assert.Error(t, err)
}

func TestNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/orders.jsonl", "orders"},
		{"orders", "orders"},
		{"archive.tar.gz", "archive.tar"},
		{".env", ".env"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, NameFromPath(tt.path))
		})
	}
}
