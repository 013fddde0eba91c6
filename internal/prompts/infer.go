// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package prompts

import "github.com/charmbracelet/huh"

// InferFormatSelect returns a select field for choosing the schema output format.
func InferFormatSelect(value *string, formats []string) *huh.Select[string] {
	options := make([]huh.Option[string], len(formats))
	for i, f := range formats {
		options[i] = huh.NewOption(f, f)
	}
	return huh.NewSelect[string]().
		Title("Output format").
		Options(options...).
		Value(value)
}

// DataFormatSelect returns a select field for choosing how messages are parsed.
func DataFormatSelect(value *string, formats []string) *huh.Select[string] {
	options := make([]huh.Option[string], len(formats))
	for i, f := range formats {
		options[i] = huh.NewOption(f, f)
	}
	return huh.NewSelect[string]().
		Title("Message format").
		Description("auto detects the format from a sample").
		Options(options...).
		Value(value)
}

// RunInferForm prompts for the output format, the message format and the
// output directory. askName adds a schema name input, used when a single
// source is inferred.
func RunInferForm(format, dataFormat, output, name *string, askName bool, formats, dataFormats []string) error {
	fields := []huh.Field{
		InferFormatSelect(format, formats),
		DataFormatSelect(dataFormat, dataFormats),
		huh.NewInput().
			Title("Output directory").
			Description("Leave empty to print the schema").
			Value(output),
	}
	if askName {
		fields = append(fields, huh.NewInput().
			Title("Schema name").
			Validate(identifierValidator[struct{}](nil)).
			Value(name))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(Theme()).Run()
}

// RunConfigInitForm prompts for the defaults written by config init.
func RunConfigInitForm(format, namespace *string, formats []string) error {
	return huh.NewForm(
		huh.NewGroup(
			InferFormatSelect(format, formats),
			huh.NewInput().
				Title("Namespace").
				Validate(requiredValidator("namespace")).
				Value(namespace),
		),
	).WithTheme(Theme()).Run()
}
