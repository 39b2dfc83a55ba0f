// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider implements clients for the external text-generation
// services. Each client sends exactly one request per call and reports the
// result as a typed outcome; retries and acceptance gating live in the
// pipeline, per the Strategy pattern.
package provider

import (
	"context"
	"fmt"

	"github.com/pdiddy/rewrite-engine/pkg/types"
)

// Status classifies a single provider call.
type Status string

const (
	// StatusReady means the provider returned generated text.
	StatusReady Status = "ready"

	// StatusLoading means the provider signalled warm-up or temporary
	// busyness (HTTP 503). Drives backoff, not a hard failure.
	StatusLoading Status = "loading"

	// StatusError covers transport failures, non-2xx statuses, and
	// unusable response bodies.
	StatusError Status = "error"
)

// Outcome is the result of one provider call.
type Outcome struct {
	Status Status

	// Text is the raw generated text when Status is StatusReady.
	Text string

	// Detail is a diagnostic message when Status is StatusError.
	Detail string
}

// Ready wraps generated text in a successful outcome.
func Ready(text string) Outcome {
	return Outcome{Status: StatusReady, Text: text}
}

// Loading marks the provider as temporarily busy.
func Loading() Outcome {
	return Outcome{Status: StatusLoading}
}

// Errorf builds an error outcome with a formatted diagnostic.
func Errorf(format string, args ...any) Outcome {
	return Outcome{Status: StatusError, Detail: fmt.Sprintf(format, args...)}
}

// Client sends one rewrite request to an external text-generation service.
// Implementations make a single outbound call per Rewrite invocation and
// never retry internally.
type Client interface {
	ID() types.ProviderID
	Rewrite(ctx context.Context, text string, tuning Tuning) Outcome
}
