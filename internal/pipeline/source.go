// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package pipeline

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxMessageSize is the longest single message a Source can hold.
const MaxMessageSize = 4 * 1024 * 1024

// StdinName names the source read from standard input.
const StdinName = "stdin"

// Source is a named batch of raw sample messages.
type Source struct {
	Name     string
	Messages [][]byte
}

// ReadSource reads newline-separated messages from r. Blank lines are
// dropped. At most limit messages are kept when limit is positive.
func ReadSource(name string, r io.Reader, limit int) (Source, error) {
	src := Source{Name: name}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxMessageSize)
	for scanner.Scan() {
		line := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		src.Messages = append(src.Messages, bytes.Clone(line))
		if limit > 0 && len(src.Messages) == limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return Source{}, fmt.Errorf("reading %s: %w", name, err)
	}
	return src, nil
}

// LoadFile reads a Source from a file. The source is named after the file
// without its extension.
func LoadFile(path string, limit int) (Source, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return Source{}, err
	}
	defer f.Close() //nolint:errcheck

	return ReadSource(NameFromPath(path), f, limit)
}

// NameFromPath derives a schema name from a file path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return name
	}
	return base
}
