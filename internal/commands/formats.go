// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

func newFormatsCmd(translators translate.Register) *cobra.Command {
	return &cobra.Command{
		Use:               "formats",
		Short:             "List output and message formats",
		Args:              cobra.NoArgs,
		PersistentPreRunE: noSession,
		Example: `  # List formats
  schema-infer formats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormats(cmd, translators)
		},
	}
}

func runFormats(cmd *cobra.Command, translators translate.Register) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "OUTPUT FORMAT\tEXTENSION")
	for _, name := range translators.Available() {
		t, err := translators.Get(name)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s\t.%s\n", name, t.FileExtension())
	}

	_, _ = fmt.Fprintln(w, "\nMESSAGE FORMAT\t")
	_, _ = fmt.Fprintln(w, "auto\t")
	for _, name := range dataFormatNames() {
		_, _ = fmt.Fprintf(w, "%s\t\n", name)
	}
	return w.Flush()
}

// noSession replaces the root pre-run for commands that work without a
// valid configuration.
func noSession(*cobra.Command, []string) error {
	return nil
}
