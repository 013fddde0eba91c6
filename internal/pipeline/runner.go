// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

// Package pipeline turns batches of raw messages into rendered schemas.
//
// Each Source is detected, parsed, inferred and translated on its own; a
// Runner processes several sources concurrently and reports one Result per
// source in input order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/akrishnanDG/schema-infer-plugin/internal/formats"
	"github.com/akrishnanDG/schema-infer-plugin/internal/infer"
	"github.com/akrishnanDG/schema-infer-plugin/internal/schema"
	"github.com/akrishnanDG/schema-infer-plugin/internal/translate"
)

var (
	// ErrNoRecords is reported when none of a source's messages could be parsed.
	ErrNoRecords = errors.New("no records could be parsed")

	// ErrBinaryMessages is reported when every message of a source is binary.
	ErrBinaryMessages = errors.New("all messages are binary")
)

// Options configures a Runner.
type Options struct {
	Infer       infer.Options
	Namespace   string
	DataFormat  formats.Format
	MaxMessages int
	Timeout     time.Duration
	MaxWorkers  int
	SampleSize  int
}

// Summary counts what happened to the messages of one source.
type Summary struct {
	Requested int
	Processed int
	Skipped   int
	Failed    int
	TimedOut  bool
}

// Result is the outcome for one source. Err is set when no schema could be
// produced; Summary and Format are filled in as far as processing got.
type Result struct {
	Source     string
	Format     formats.Format
	Confidence float64
	Fallback   bool // messages were re-read as raw text
	Summary    Summary
	Schema     *schema.InferredSchema
	Output     []byte
	Extension  string
	Err        error
}

// Runner runs inference over sources.
type Runner struct {
	opts       Options
	translator translate.Translator
	log        logrus.FieldLogger
}

// NewRunner validates opts and returns a Runner rendering with t.
func NewRunner(opts Options, t translate.Translator, log logrus.FieldLogger) (*Runner, error) {
	if err := opts.Infer.Validate(); err != nil {
		return nil, err
	}
	if opts.DataFormat == "" {
		opts.DataFormat = formats.FormatAuto
	}
	if opts.MaxWorkers < 1 {
		opts.MaxWorkers = 1
	}
	if opts.SampleSize < 1 {
		opts.SampleSize = formats.DefaultSampleSize
	}
	return &Runner{opts: opts, translator: t, log: log}, nil
}

// Run processes every source and returns results in source order. A
// failing source never stops the others.
func (r *Runner) Run(ctx context.Context, sources []Source) []Result {
	log := r.log.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"format": r.translator.Name(),
	})
	log.WithField("sources", len(sources)).Info("starting schema inference")

	results := make([]Result, len(sources))
	var g errgroup.Group
	g.SetLimit(r.opts.MaxWorkers)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = r.runSource(ctx, src, log.WithField("source", src.Name))
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	log.WithFields(logrus.Fields{
		"successful": len(results) - failed,
		"failed":     failed,
	}).Info("schema inference finished")
	return results
}

func (r *Runner) runSource(ctx context.Context, src Source, log logrus.FieldLogger) Result {
	res := Result{Source: src.Name, Extension: r.translator.FileExtension()}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	messages := src.Messages
	if r.opts.MaxMessages > 0 && len(messages) > r.opts.MaxMessages {
		messages = messages[:r.opts.MaxMessages]
	}
	res.Summary.Requested = len(messages)
	if len(messages) == 0 {
		res.Err = formats.ErrNoMessages
		log.Warn("no messages to infer from")
		return res
	}

	res.Format, res.Confidence = r.opts.DataFormat, 1
	if r.opts.DataFormat == formats.FormatAuto {
		d := formats.Detector{SampleSize: r.opts.SampleSize}
		det, err := d.Detect(messages)
		if err != nil {
			res.Err = err
			return res
		}
		res.Format, res.Confidence = det.Format, det.Confidence
		log.WithFields(logrus.Fields{
			"data_format": det.Format,
			"confidence":  fmt.Sprintf("%.2f", det.Confidence),
		}).Debug("detected data format")
	}

	acc, err := r.parse(ctx, res.Format, messages, &res.Summary, log)
	if err != nil {
		res.Err = err
		return res
	}
	if acc.Records() == 0 && res.Format != formats.FormatRawText && !res.Summary.TimedOut {
		log.WithField("data_format", res.Format).Info("no message parsed, retrying as raw text")
		res.Format, res.Fallback = formats.FormatRawText, true
		res.Summary = Summary{Requested: len(messages)}
		if acc, err = r.parse(ctx, res.Format, messages, &res.Summary, log); err != nil {
			res.Err = err
			return res
		}
	}
	if acc.Records() == 0 {
		res.Err = ErrNoRecords
		if res.Summary.TimedOut {
			res.Err = fmt.Errorf("%w before the deadline", ErrNoRecords)
		}
		return res
	}
	if res.Format == formats.FormatRawText && acc.AllBinary() {
		res.Err = ErrBinaryMessages
		return res
	}

	resolver, err := infer.NewResolver(r.opts.Infer, infer.WithNamespace(r.opts.Namespace))
	if err != nil {
		res.Err = err
		return res
	}
	res.Schema = resolver.Resolve(acc.Accumulator, src.Name, acc.Records())

	out, err := r.translator.Translate(res.Schema)
	if err != nil {
		res.Err = fmt.Errorf("translating %s: %w", src.Name, err)
		return res
	}
	res.Output = out

	log.WithFields(logrus.Fields{
		"processed": res.Summary.Processed,
		"skipped":   res.Summary.Skipped,
		"failed":    res.Summary.Failed,
		"fields":    len(res.Schema.Fields),
	}).Info("schema inferred")
	return res
}

// accumulation wraps an Accumulator and remembers whether every record it
// saw was flagged as binary raw text.
type accumulation struct {
	*infer.Accumulator
	binary int
}

func (a *accumulation) AllBinary() bool {
	return a.Records() > 0 && a.binary == a.Records()
}

// parse folds messages into a new accumulation, stopping early when ctx
// is done. A deadline marks the summary as timed out and keeps what was
// gathered; cancellation is returned as an error.
func (r *Runner) parse(ctx context.Context, f formats.Format, messages [][]byte, sum *Summary, log logrus.FieldLogger) (*accumulation, error) {
	parser, err := formats.NewParser(f)
	if err != nil {
		return nil, err
	}
	inner, err := infer.NewAccumulator(r.opts.Infer)
	if err != nil {
		return nil, err
	}
	acc := &accumulation{Accumulator: inner}

	for i, msg := range messages {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				sum.TimedOut = true
				log.WithField("processed", sum.Processed).Warn("timeout reached, inferring from partial sample")
				return acc, nil
			}
			return nil, err
		}

		rec, err := parser.Parse(msg)
		switch {
		case err != nil:
			sum.Failed++
			log.WithError(err).WithField("message", i).Debug("skipping unparseable message")
		case rec == nil:
			sum.Skipped++
		default:
			if binary, _ := rec["is_binary"].(bool); binary {
				acc.binary++
			}
			acc.Observe(rec)
			sum.Processed++
		}
	}
	return acc, nil
}
