// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package commands

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags binds configuration keys to flags. Only flags set on the command
// line override the configuration file.
func bindFlags(v *viper.Viper, lookup func(string) *pflag.Flag, keys map[string]string) {
	for key, name := range keys {
		if f := lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}
