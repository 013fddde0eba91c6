// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/akrishnanDG/schema-infer-plugin/internal/config"
	"github.com/akrishnanDG/schema-infer-plugin/internal/prompts"
	"github.com/akrishnanDG/schema-infer-plugin/internal/session"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

type configInitOptions struct {
	format         string
	namespace      string
	force          bool
	nonInteractive bool
}

func newConfigInitCmd(translators translate.Register) *cobra.Command {
	opts := &configInitOptions{}

	cmd := &cobra.Command{
		Use:               "init",
		Short:             "Write a default configuration file",
		Long:              `Write a schema-infer.yaml holding the default configuration to the current directory.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: noSession,
		Example: `  # Interactive mode
  schema-infer config init

  # Non-interactive
  schema-infer config init --format avro --namespace com.acme --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, translators, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", config.DefaultOutputFormat, "Default output format")
	cmd.Flags().StringVar(&opts.namespace, "namespace", config.DefaultNamespace, "Default schema namespace")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration file")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runConfigInit(cmd *cobra.Command, translators translate.Register, opts *configInitOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(cwd, config.FileName)
	if _, err := os.Stat(path); err == nil && !opts.force {
		return errors.New(config.FileName + " already exists; use --force to overwrite")
	}

	if !opts.nonInteractive {
		if err := prompts.RunConfigInitForm(&opts.format, &opts.namespace, translators.Available()); err != nil {
			return err
		}
	}
	if _, err := translators.Get(opts.format); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.Output.Format = opts.format
	cfg.Inference.Namespace = opts.namespace

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: path},
		{Label: "Format", Value: cfg.Output.Format},
		{Label: "Namespace", Value: cfg.Inference.Namespace},
	}, "Initialization completed")
	return nil
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after the file, SCHEMA_INFER_* environment
variables and flags have been applied.`,
		Args: cobra.NoArgs,
		Example: `  # Show the effective configuration
  SCHEMA_INFER_MAX_MESSAGES=200 schema-infer config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runConfigShow(cmd, s)
		},
	}
}

func runConfigShow(cmd *cobra.Command, s *session.Context) error {
	out := cmd.OutOrStdout()
	if s.ConfigPath != "" {
		_, _ = fmt.Fprintf(out, "# %s\n", s.ConfigPath)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s.Config); err != nil {
		return err
	}
	return enc.Close()
}
