// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/akrishnanDG/schema-infer-plugin/internal/commands"
	"github.com/akrishnanDG/schema-infer-plugin/internal/session"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate/avro"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate/jsonschema"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate/markdown"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate/protobuf"
)

// ConfigEnv names the environment variable holding a default config path.
const ConfigEnv = "SCHEMA_INFER_CONFIG"

// Translators returns every schema translator the CLI offers.
func Translators() translate.Register {
	return translate.NewRegister(
		&jsonschema.Translator{},
		&avro.Translator{},
		&protobuf.Translator{},
		&markdown.Translator{},
	)
}

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, arguments, env lookup).
// A .env file in the working directory is loaded first when present.
func Run(ctx context.Context, args []string, getenv func(string) string) error {
	_ = godotenv.Load()

	rootCmd := commands.NewRootCmd(Translators())
	if path := getenv(ConfigEnv); path != "" {
		if err := rootCmd.PersistentFlags().Set(session.ConfigFlag, path); err != nil {
			return err
		}
	}
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
