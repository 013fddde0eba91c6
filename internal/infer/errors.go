// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package infer

import "fmt"

// ConfigError reports an invalid inference option.
type ConfigError struct {
	Option string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Option, e.Value, e.Reason)
}
