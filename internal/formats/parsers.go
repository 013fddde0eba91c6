// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package formats

import (
	"bytes"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxKeyLength   = 100
	maxValueLength = 1000
)

var errBinary = errors.New("message is not text")

// jsonParser decodes one JSON document per message. Numbers are kept as
// json.Number so integers and floats stay distinguishable.
type jsonParser struct{}

func (p *jsonParser) Parse(msg []byte) (map[string]any, error) {
	text := bytes.TrimSpace(msg)
	if len(text) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON: trailing data after document")
	}

	switch v := data.(type) {
	case map[string]any:
		return v, nil
	case []any:
		if len(v) > 0 {
			if _, ok := v[0].(map[string]any); ok {
				merged := make(map[string]any)
				for _, item := range v {
					if obj, ok := item.(map[string]any); ok {
						for k, val := range obj {
							merged[k] = val
						}
					}
				}
				return merged, nil
			}
		}
		return map[string]any{"array": v}, nil
	default:
		return map[string]any{"value": v}, nil
	}
}

// delimitedParser reads CSV-style messages. The first row it ever sees is
// the header; later rows are padded or truncated to the header width.
type delimitedParser struct {
	comma  rune
	header []string
}

func newDelimitedParser(comma rune) *delimitedParser {
	return &delimitedParser{comma: comma}
}

func (p *delimitedParser) Parse(msg []byte) (map[string]any, error) {
	text := bytes.TrimSpace(msg)
	if len(text) == 0 {
		return nil, nil
	}
	if !utf8.Valid(text) {
		return nil, errBinary
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = p.comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid delimited row: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	if p.header == nil {
		p.header = rows[0]
		rows = rows[1:]
		if len(rows) == 0 {
			return nil, nil
		}
	}

	row := rows[0]
	record := make(map[string]any, len(p.header))
	for i, name := range p.header {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		record[name] = coerce(cell)
	}
	return record, nil
}

// keyValueParser reads k=v pairs separated by commas. Messages using k:v
// pairs are accepted too.
type keyValueParser struct{}

func (p *keyValueParser) Parse(msg []byte) (map[string]any, error) {
	text := bytes.TrimSpace(msg)
	if len(text) == 0 {
		return nil, nil
	}
	if !utf8.Valid(text) || !isMostlyText(text) {
		return nil, errBinary
	}

	s := string(text)
	sep := "="
	if !strings.Contains(s, sep) {
		sep = ":"
		if !strings.Contains(s, sep) {
			return nil, errors.New("no key-value pairs")
		}
	}

	record := make(map[string]any)
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), sep)
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" || value == "" || len(key) > maxKeyLength || len(value) > maxValueLength {
			continue
		}
		record[key] = coerce(unquote(value))
	}
	if len(record) == 0 {
		return nil, errors.New("no key-value pairs")
	}
	return record, nil
}

// rawTextParser wraps a whole message in a single-field record. Messages
// that are not valid UTF-8 are hex-encoded.
type rawTextParser struct{}

func (p *rawTextParser) Parse(msg []byte) (map[string]any, error) {
	if !utf8.Valid(msg) {
		if len(msg) == 0 {
			return nil, nil
		}
		return map[string]any{
			"raw_content":    hex.EncodeToString(msg),
			"message_length": len(msg),
			"is_binary":      true,
		}, nil
	}

	text := strings.TrimSpace(string(msg))
	if text == "" {
		return nil, nil
	}
	return map[string]any{
		"raw_content":    text,
		"message_length": utf8.RuneCountInString(text),
		"is_binary":      false,
	}, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// coerce converts a textual scalar to bool, int64 or float64 when it parses
// as one. Empty text becomes nil.
func coerce(s string) any {
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}
