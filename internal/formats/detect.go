// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The schema-infer Authors

package formats

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSampleSize is the number of messages the Detector looks at.
	DefaultSampleSize = 100

	patternWeight    = 0.7
	validationWeight = 0.3

	// Below this confidence a detection falls back to raw text.
	minConfidence      = 0.3
	fallbackConfidence = 0.1
)

// Detection is the result of format detection.
type Detection struct {
	Format     Format
	Confidence float64
}

type formatRule struct {
	format   Format
	patterns []*regexp.Regexp
	validate func(messages []string) float64
}

var rules = []formatRule{
	{
		format: FormatJSON,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?s)^\s*\{.*\}\s*$`),
			regexp.MustCompile(`(?s)^\s*\[.*\]\s*$`),
		},
		validate: validateJSON,
	},
	{
		format: FormatKeyValue,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?s)^[^=]+=[^=]+(,[^=]+=[^=]+)*$`),
			regexp.MustCompile(`(?s)^[^:]+:[^:]+(,[^:]+:[^:]+)*$`),
		},
		validate: validateKeyValue,
	},
	{
		format: FormatTSV,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?s)^[^\t]+(\t[^\t]+)+$`),
		},
		validate: func(messages []string) float64 { return columnConsistency(messages, "\t") },
	},
	{
		format: FormatCSV,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?s)^[^,]+(,[^,]+)+$`),
		},
		validate: func(messages []string) float64 { return columnConsistency(messages, ",") },
	},
}

// Detector guesses the format of a sample of messages.
type Detector struct {
	SampleSize int
}

// NewDetector returns a Detector with the default sample size.
func NewDetector() *Detector {
	return &Detector{SampleSize: DefaultSampleSize}
}

// Detect scores every format against the sampled messages. Each score is
// 0.7 times the share of messages matching a format pattern plus 0.3 times
// a format-specific validation score. Ties go to the earlier format in
// Formats order. Samples without UTF-8 text, or whose best score is below
// 0.3, are reported as raw text.
func (d *Detector) Detect(messages [][]byte) (Detection, error) {
	if len(messages) == 0 {
		return Detection{}, ErrNoMessages
	}

	n := len(messages)
	if d.SampleSize > 0 {
		n = min(n, d.SampleSize)
	}

	texts := make([]string, 0, n)
	for _, msg := range messages[:n] {
		if !utf8.Valid(msg) {
			continue
		}
		if text := strings.TrimSpace(string(msg)); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return Detection{Format: FormatRawText, Confidence: fallbackConfidence}, nil
	}

	best := Detection{}
	for _, rule := range rules {
		score := rule.score(texts)
		if score > best.Confidence {
			best = Detection{Format: rule.format, Confidence: score}
		}
	}

	if best.Confidence < minConfidence {
		return Detection{Format: FormatRawText, Confidence: fallbackConfidence}, nil
	}
	return best, nil
}

func (r formatRule) score(messages []string) float64 {
	matching := 0
	for _, msg := range messages {
		for _, p := range r.patterns {
			if p.MatchString(msg) {
				matching++
				break
			}
		}
	}
	patternScore := float64(matching) / float64(len(messages))
	return min(patternScore*patternWeight+r.validate(messages)*validationWeight, 1.0)
}

func validateJSON(messages []string) float64 {
	valid := 0
	for _, msg := range messages {
		if json.Valid([]byte(msg)) {
			valid++
		}
	}
	return float64(valid) / float64(len(messages))
}

func validateKeyValue(messages []string) float64 {
	valid := 0
	for _, msg := range messages {
		sep := ""
		switch {
		case strings.Contains(msg, "="):
			sep = "="
		case strings.Contains(msg, ":"):
			sep = ":"
		default:
			continue
		}
		ok := true
		for _, pair := range strings.Split(msg, ",") {
			if strings.Count(pair, sep) != 1 {
				ok = false
				break
			}
		}
		if ok {
			valid++
		}
	}
	return float64(valid) / float64(len(messages))
}

// columnConsistency is the share of messages that split into at least two
// columns and agree with the most common column count.
func columnConsistency(messages []string, sep string) float64 {
	counts := make(map[int]int)
	mostCommon := 0
	for _, msg := range messages {
		c := strings.Count(msg, sep) + 1
		if c < 2 {
			continue
		}
		counts[c]++
		mostCommon = max(mostCommon, counts[c])
	}
	return float64(mostCommon) / float64(len(messages))
}

// isMostlyText reports whether at most a tenth of s is control characters.
func isMostlyText(s []byte) bool {
	control := 0
	for _, c := range s {
		if c < 32 && c != '\t' && c != '\n' && c != '\r' {
			control++
		}
	}
	return float64(control) <= float64(len(s))*0.1
}
