// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package translate

import (
	"fmt"
	"strings"

	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
)

// UnsupportedFormatError is returned when no translator is registered for a
// format identifier.
type UnsupportedFormatError struct {
	Format    string
	Available []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q (available: %s)", e.Format, strings.Join(e.Available, ", "))
}

// UnsupportedTypeError is returned when a schema tree contains a kind the
// translator has no mapping for. It signals a bug in the producer of the
// tree, not bad sample data.
type UnsupportedTypeError struct {
	Field string
	Kind  schema.Kind
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("field %q: unsupported type %q", e.Field, e.Kind)
}
