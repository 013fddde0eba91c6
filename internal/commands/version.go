// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akrishnanDG/schema-infer-plugin/internal/version"
)

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:               "version",
		Short:             "Show the schema-infer version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: noSession,
		Example: `  # Show the version
  schema-infer version`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Short())
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Info())
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
