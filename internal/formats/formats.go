// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package formats detects the wire format of raw sample messages and parses
// them into records ready for schema inference.
package formats

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies a message encoding.
type Format string

// Supported formats. FormatAuto asks the Detector to choose.
const (
	FormatAuto     Format = "auto"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatKeyValue Format = "key-value"
	FormatRawText  Format = "raw-text"
)

var (
	// ErrNoMessages is returned when detection is asked to work on nothing.
	ErrNoMessages = errors.New("no messages provided")

	// ErrUnsupportedFormat is returned for unknown format names.
	ErrUnsupportedFormat = errors.New("unsupported data format")
)

// Formats returns every concrete format, in detection priority order.
func Formats() []Format {
	return []Format{FormatJSON, FormatKeyValue, FormatTSV, FormatCSV, FormatRawText}
}

// ParseFormat converts a user-supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FormatAuto, FormatJSON, FormatCSV, FormatTSV, FormatKeyValue, FormatRawText:
		return f, nil
	case "":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Parser turns one raw message into a record. A nil record with a nil error
// means the message carried no data, such as a blank line or a header row.
type Parser interface {
	Parse(msg []byte) (map[string]any, error)
}

// NewParser returns a fresh parser for f. Delimited parsers remember the
// header row, so a parser must not be shared between sources.
func NewParser(f Format) (Parser, error) {
	switch f {
	case FormatJSON:
		return &jsonParser{}, nil
	case FormatCSV:
		return newDelimitedParser(','), nil
	case FormatTSV:
		return newDelimitedParser('\t'), nil
	case FormatKeyValue:
		return &keyValueParser{}, nil
	case FormatRawText:
		return &rawTextParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Batch is the outcome of parsing a set of messages.
type Batch struct {
	Records []map[string]any
	Skipped int // messages without data
	Failed  int // messages that could not be parsed
}

// ParseAll parses every message with p. Unparseable messages are counted,
// never returned as errors.
func ParseAll(p Parser, messages [][]byte) Batch {
	var b Batch
	for _, msg := range messages {
		rec, err := p.Parse(msg)
		switch {
		case err != nil:
			b.Failed++
		case rec == nil:
			b.Skipped++
		default:
			b.Records = append(b.Records, rec)
		}
	}
	return b
}
