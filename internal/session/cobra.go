// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package session

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigFlag is the persistent flag naming an explicit config file.
const ConfigFlag = "config"

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's
// context, returning ErrNotLoaded if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	s := FromCommand(cmd)
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s, nil
}

// PreRunLoad returns a PersistentPreRunE function that loads the session
// and stores it in the command's context. Overrides come from v, which
// should have the command's flags bound to configuration keys.
func PreRunLoad(v *viper.Viper) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		opts := LoadOptions{
			Viper:     v,
			LogOutput: cmd.ErrOrStderr(),
		}
		if f := cmd.Flag(ConfigFlag); f != nil {
			opts.ConfigPath = f.Value.String()
		}

		ctx, err := Load(cmd.Context(), opts)
		if err != nil {
			return err
		}
		cmd.SetContext(ctx)
		return nil
	}
}
