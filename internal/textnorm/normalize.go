// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm cleans raw provider output into deliverable text.
// Normalization is deterministic and idempotent so that scoring a candidate
// against the normalized input is stable regardless of provider variability.
package textnorm

import (
	"regexp"
	"strings"
)

// boilerplatePrefixes are labels providers prepend to their output. Matched
// case-insensitively at the start of the text, repeatedly until none remain.
var boilerplatePrefixes = []string{
	"rewritten text:",
	"rewritten version:",
	"paraphrased text:",
	"humanized text:",
	"here is the rewritten text:",
	"summary:",
	"output:",
	"result:",
}

var (
	urlPattern   = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

	// Call-to-action boilerplate. Everything from the marker to the end of
	// the text is dropped.
	ctaPattern = regexp.MustCompile(`(?is)\b(click here|visit:|share this|back to|subscribe now|read more at).*$`)

	// Conservative character whitelist: word characters, whitespace, and
	// basic sentence punctuation.
	disallowedPattern = regexp.MustCompile(`[^\w\s.,!?'"-]`)

	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// substitution replaces one stilted connective with a plain equivalent.
type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

// deAISubstitutions is the lexical pass removing stock "AI-sounding"
// connectives. Longer phrases come first so they are not shadowed by their
// single-word suffixes.
var deAISubstitutions = []substitution{
	{regexp.MustCompile(`(?i)\bit can be seen that\b`), ""},
	{regexp.MustCompile(`(?i)\bin conclusion\b`), ""},
	{regexp.MustCompile(`(?i)\bas such\b`), ""},
	{regexp.MustCompile(`(?i)\bmoreover\b`), "also"},
	{regexp.MustCompile(`(?i)\bfurthermore\b`), "and"},
	{regexp.MustCompile(`(?i)\btherefore\b`), ""},
	{regexp.MustCompile(`(?i)\bhence\b`), ""},
	{regexp.MustCompile(`(?i)\bthus\b`), "so"},
}

// Normalize strips provider artifacts from raw generated text. It never
// fails; degenerate input yields an empty or near-empty string which later
// falls out of the length and similarity gates naturally.
func Normalize(raw string) string {
	s := stripPrefixes(raw)
	s = urlPattern.ReplaceAllString(s, " ")
	s = emailPattern.ReplaceAllString(s, " ")
	s = ctaPattern.ReplaceAllString(s, " ")
	s = disallowedPattern.ReplaceAllString(s, " ")
	s = collapse(s)
	for _, sub := range deAISubstitutions {
		s = sub.pattern.ReplaceAllString(s, sub.replacement)
	}
	return collapse(s)
}

// stripPrefixes removes leading boilerplate labels. Repeats until no prefix
// matches so that stacked labels ("Summary: Rewritten text: ...") are fully
// removed in one Normalize call.
func stripPrefixes(s string) string {
	for {
		trimmed := strings.TrimSpace(s)
		stripped := false
		lower := strings.ToLower(trimmed)
		for _, prefix := range boilerplatePrefixes {
			if strings.HasPrefix(lower, prefix) {
				trimmed = trimmed[len(prefix):]
				stripped = true
				break
			}
		}
		s = trimmed
		if !stripped {
			return s
		}
	}
}

// collapse folds whitespace runs into single spaces and trims the ends.
func collapse(s string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(s, " "))
}
