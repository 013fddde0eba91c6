// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akrishnanDG/schema-infer-plugin/internal/config"
	"github.com/akrishnanDG/schema-infer-plugin/internal/session"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(translators translate.Register) *cobra.Command {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:   "schema-infer",
		Short: "Infer schemas from sample messages",
		Long: `Infer JSON Schema, Avro and Protobuf schemas from samples of messages.
Schemas can also be rendered as markdown documentation.

Configuration is read from schema-infer.yaml in the working directory (or
--config), then overridden by SCHEMA_INFER_* environment variables and flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: session.PreRunLoad(v),
	}

	flags := rootCmd.PersistentFlags()
	flags.String(session.ConfigFlag, "", "Config file (default ./"+config.FileName+")")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	bindFlags(v, flags.Lookup, map[string]string{
		"logging.level":  "log-level",
		"logging.format": "log-format",
	})

	registerInferCmd(rootCmd, translators, v)
	registerFormatsCmd(rootCmd, translators)
	registerConfigCmd(rootCmd, translators)
	registerVersionCmd(rootCmd)

	return rootCmd
}

func registerInferCmd(parent *cobra.Command, translators translate.Register, v *viper.Viper) {
	parent.AddCommand(newInferCmd(translators, v))
}

func registerFormatsCmd(parent *cobra.Command, translators translate.Register) {
	parent.AddCommand(newFormatsCmd(translators))
}

func registerConfigCmd(parent *cobra.Command, translators translate.Register) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the schema-infer configuration",
	}

	cmd.AddCommand(newConfigInitCmd(translators))
	cmd.AddCommand(newConfigShowCmd())

	parent.AddCommand(cmd)
}

func registerVersionCmd(parent *cobra.Command) {
	parent.AddCommand(newVersionCmd())
}
