// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akrishnanDG/schema-infer-plugin/internal/config"
	"github.com/akrishnanDG/schema-infer-plugin/internal/formats"
	"github.com/akrishnanDG/schema-infer-plugin/internal/infer"
	"github.com/akrishnanDG/schema-infer-plugin/internal/pipeline"
	"github.com/akrishnanDG/schema-infer-plugin/internal/prompts"
	"github.com/akrishnanDG/schema-infer-plugin/internal/session"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

// DefaultOutputDir receives schemas when several sources are inferred and
// no output directory is configured.
const DefaultOutputDir = "schemas"

type inferOptions struct {
	name        string
	interactive bool
}

func newInferCmd(translators translate.Register, v *viper.Viper) *cobra.Command {
	opts := &inferOptions{}

	cmd := &cobra.Command{
		Use:   "infer [file...]",
		Short: "Infer a schema from sample messages",
		Long: fmt.Sprintf(`Infer a schema from newline-separated sample messages.

Each file is one source and yields one schema. With no file, or "-",
messages are read from standard input. A single schema is printed unless
--output is set; several schemas are written to --output (default %q).

Available formats: %s
Message formats: %s`, DefaultOutputDir, strings.Join(translators.Available(), ", "), strings.Join(dataFormatNames(), ", ")),
		Example: `  # Print a JSON Schema for a file of JSON lines
  schema-infer infer events.jsonl

  # Read from stdin and render Avro
  cat events.jsonl | schema-infer infer --format avro --name user_events

  # Infer several sources into a directory
  schema-infer infer orders.jsonl users.csv --format protobuf --output schemas

  # Interactive mode
  schema-infer infer events.jsonl --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(cmd, translators, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringP("format", "f", config.DefaultOutputFormat, fmt.Sprintf("Output format (%s)", strings.Join(translators.Available(), ", ")))
	f.StringP("output", "o", "", "Output directory")
	f.StringP("data-format", "d", string(formats.FormatAuto), fmt.Sprintf("Message format (%s)", strings.Join(dataFormatNames(), ", ")))
	f.StringVarP(&opts.name, "name", "n", "", "Schema name (single source only)")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for output options")
	f.Int("max-messages", config.DefaultMaxMessages, "Maximum messages sampled per source")
	f.Duration("timeout", config.DefaultTimeout, "Maximum time spent per source")
	f.Int("sample-size", formats.DefaultSampleSize, "Messages used for format detection")
	f.Int("max-depth", infer.DefaultMaxDepth, "Maximum nesting depth")
	f.Float64("confidence-threshold", infer.DefaultConfidenceThreshold, "Minimum share of observations agreeing on a type")
	f.String("array-handling", string(infer.ArrayUnion), "Array element strategy (union, first, all)")
	f.String("null-handling", string(infer.NullOptional), "Null strategy (optional, required, ignore)")
	f.String("namespace", config.DefaultNamespace, "Schema namespace")
	f.Int("workers", config.DefaultMaxWorkers, "Sources processed concurrently")

	bindFlags(v, f.Lookup, map[string]string{
		"output.format":                  "format",
		"output.dir":                     "output",
		"inference.data_format":          "data-format",
		"inference.max_messages":         "max-messages",
		"inference.timeout":              "timeout",
		"inference.sample_size":          "sample-size",
		"inference.max_depth":            "max-depth",
		"inference.confidence_threshold": "confidence-threshold",
		"inference.array_handling":       "array-handling",
		"inference.null_handling":        "null-handling",
		"inference.namespace":            "namespace",
		"performance.max_workers":        "workers",
	})

	return cmd
}

func runInfer(cmd *cobra.Command, translators translate.Register, opts *inferOptions, args []string) error {
	s, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}
	cfg := s.Config

	if len(args) == 0 {
		args = []string{"-"}
	}
	if opts.name != "" && len(args) > 1 {
		return errors.New("--name requires a single input")
	}

	format := cfg.Output.Format
	dataFormat := cfg.Inference.DataFormat
	output := cfg.Output.Dir
	name := opts.name

	// Prompt for any missing values
	if opts.interactive {
		askName := len(args) == 1 && name == ""
		if askName {
			name = pipeline.StdinName
			if args[0] != "-" {
				name = pipeline.NameFromPath(args[0])
			}
		}
		err := prompts.RunInferForm(
			&format, &dataFormat, &output, &name, askName,
			translators.Available(), append([]string{string(formats.FormatAuto)}, dataFormatNames()...),
		)
		if err != nil {
			return err
		}
	}

	translator, err := translators.Get(format)
	if err != nil {
		return err
	}
	df, err := formats.ParseFormat(dataFormat)
	if err != nil {
		return err
	}
	inferOpts, err := cfg.InferOptions()
	if err != nil {
		return err
	}

	sources, err := loadSources(cmd.InOrStdin(), args, cfg.Inference.MaxMessages)
	if err != nil {
		return err
	}
	if name != "" {
		sources[0].Name = name
	}

	runner, err := pipeline.NewRunner(pipeline.Options{
		Infer:       inferOpts,
		Namespace:   cfg.Inference.Namespace,
		DataFormat:  df,
		MaxMessages: cfg.Inference.MaxMessages,
		Timeout:     cfg.Inference.Timeout,
		MaxWorkers:  cfg.Performance.MaxWorkers,
		SampleSize:  cfg.Inference.SampleSize,
	}, translator, s.Logger)
	if err != nil {
		return err
	}
	results := runner.Run(cmd.Context(), sources)

	toStdout := output == "" && len(sources) == 1
	if output == "" {
		output = DefaultOutputDir
	}
	if !toStdout {
		if err := os.MkdirAll(output, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var written, failures []prompts.ResultField
	for _, res := range results {
		if res.Err != nil {
			failures = append(failures, prompts.ResultField{Label: res.Source, Value: res.Err.Error()})
			continue
		}

		target := "stdout"
		if toStdout {
			if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
				return err
			}
		} else {
			target = filepath.Join(output, filepath.Base(res.Source)+"."+res.Extension)
			if err := os.WriteFile(target, res.Output, 0o600); err != nil {
				failures = append(failures, prompts.ResultField{Label: res.Source, Value: err.Error()})
				continue
			}
		}
		written = append(written, prompts.ResultField{Label: res.Source, Value: describeResult(target, res)})
	}

	stderr := cmd.ErrOrStderr()
	if len(written) > 0 {
		prompts.PrintResult(stderr, written, fmt.Sprintf("Successfully inferred %d schema(s) as %s", len(written), translator.Name()))
	}
	prompts.PrintFailures(stderr, failures)

	if len(failures) > 0 {
		return fmt.Errorf("failed to infer %d schema(s)", len(failures))
	}
	return nil
}

// loadSources reads every input. Sources sharing a name get _2, _3, ...
// suffixes so their output files never collide.
func loadSources(stdin io.Reader, args []string, limit int) ([]pipeline.Source, error) {
	names := translate.NewNamer()
	sources := make([]pipeline.Source, 0, len(args))
	stdinUsed := false

	for _, arg := range args {
		var (
			src pipeline.Source
			err error
		)
		if arg == "-" {
			if stdinUsed {
				return nil, errors.New("standard input can only be read once")
			}
			stdinUsed = true
			src, err = pipeline.ReadSource(pipeline.StdinName, stdin, limit)
		} else {
			src, err = pipeline.LoadFile(arg, limit)
		}
		if err != nil {
			return nil, err
		}
		src.Name = names.Unique(src.Name)
		sources = append(sources, src)
	}
	return sources, nil
}

func describeResult(target string, res pipeline.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s", target, res.Format)
	if res.Fallback {
		b.WriteString(" fallback")
	} else {
		fmt.Fprintf(&b, " %.2f", res.Confidence)
	}
	fmt.Fprintf(&b, ", %d/%d messages", res.Summary.Processed, res.Summary.Requested)
	if res.Summary.TimedOut {
		b.WriteString(", timed out")
	}
	b.WriteString(")")
	return b.String()
}

func dataFormatNames() []string {
	fs := formats.Formats()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = string(f)
	}
	return names
}
