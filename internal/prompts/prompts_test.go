// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package prompts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierValidator(t *testing.T) {
	validate := identifierValidator(map[string]struct{}{"orders": {}})

	tests := []struct {
		in      string
		wantErr bool
	}{
		{"user_events", false},
		{"user-events", false},
		{"_private", false},
		{"", true},
		{"1st", true},
		{"has space", true},
		{"orders", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if tt.wantErr {
				assert.Error(t, validate(tt.in))
			} else {
				assert.NoError(t, validate(tt.in))
			}
		})
	}
}

func TestRequiredValidator(t *testing.T) {
	validate := requiredValidator("namespace")
	assert.EqualError(t, validate(""), "namespace is required")
	assert.NoError(t, validate("com.example"))
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, []ResultField{{Label: "Format", Value: "avro"}}, "Done")

	assert.Contains(t, buf.String(), "Format:")
	assert.Contains(t, buf.String(), "avro")
	assert.Contains(t, buf.String(), "Done")
}

func TestPrintFailures(t *testing.T) {
	var buf bytes.Buffer
	PrintFailures(&buf, nil)
	assert.Empty(t, buf.String())

	PrintFailures(&buf, []ResultField{{Label: "orders", Value: "no records could be parsed"}})
	assert.Contains(t, buf.String(), "orders:")
	assert.Contains(t, buf.String(), "no records could be parsed")
}
