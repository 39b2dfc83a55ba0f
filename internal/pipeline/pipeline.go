// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the rewrite flow: the primary provider with
// retries and best-effort fallback, then a single secondary attempt when the
// primary yields nothing usable.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/rewrite-engine/internal/httputil"
	"github.com/pdiddy/rewrite-engine/internal/provider"
	"github.com/pdiddy/rewrite-engine/internal/score"
	"github.com/pdiddy/rewrite-engine/internal/textnorm"
	"github.com/pdiddy/rewrite-engine/pkg/types"
)

const (
	// minInputChars is the caller contract: inputs shorter than this fail
	// fast with ErrEmptyInput.
	minInputChars = 10

	// minOutputChars rejects secondary output that normalizes to nearly
	// nothing. Near-empty text is never an acceptable rewrite.
	minOutputChars = 10

	defaultMaxAttempts = 5
	defaultBackoffBase = time.Second
)

// Pipeline processes rewrite requests. All per-request state (best-so-far
// slot, attempt counters) is local to one Rewrite call, so a single Pipeline
// is safe to use concurrently for different requests.
type Pipeline struct {
	primary   provider.Client
	secondary provider.Client
	retry     retryController
}

// New builds a pipeline over the two provider clients. Zero retry settings
// fall back to the defaults (5 attempts, 1s backoff base). Progress and
// warnings go to log.
func New(primary, secondary provider.Client, cfg types.RetryConfig, log io.Writer) *Pipeline {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	base := cfg.BackoffBase
	if base <= 0 {
		base = defaultBackoffBase
	}
	if log == nil {
		log = io.Discard
	}

	return &Pipeline{
		primary:   primary,
		secondary: secondary,
		retry: retryController{
			maxAttempts: maxAttempts,
			backoff:     exponentialBackoff(base),
			sleep:       sleepWith,
			log:         log,
		},
	}
}

// Rewrite runs the full pipeline for one input text. It always returns a
// Result; unanticipated faults are converted to ErrInternal rather than
// propagating past this boundary.
func (p *Pipeline) Rewrite(ctx context.Context, input string) (result types.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = types.Result{
				Err:    types.ErrInternal,
				Detail: httputil.Truncate(fmt.Sprintf("%v", r), detailLimit),
			}
		}
	}()

	if len(strings.TrimSpace(input)) < minInputChars {
		return types.Result{Err: types.ErrEmptyInput, Detail: "input shorter than 10 characters"}
	}

	normalizedInput := textnorm.Normalize(input)
	tuning := provider.TuningFor(len(input))

	phase := p.retry.run(ctx, p.primary, input, normalizedInput, tuning)
	switch phase.state {
	case phaseSucceeded:
		return p.deliver(*phase.candidate, normalizedInput, false)
	case phaseExhaustedWithBest:
		// Below-threshold but non-degenerate beats failing the request.
		return p.deliver(*phase.candidate, normalizedInput, true)
	}

	// Primary yielded nothing at all; one secondary attempt, no retries.
	out := p.secondary.Rewrite(ctx, input, tuning)
	switch out.Status {
	case provider.StatusReady:
		cand := scoreCandidate(out.Text, normalizedInput, score.WordCount(input), p.secondary.ID())
		if len(cand.NormalizedText) < minOutputChars {
			return types.Result{
				Err:    types.ErrGenerationTooShort,
				Detail: fmt.Sprintf("rewrite normalized to %d characters", len(cand.NormalizedText)),
			}
		}
		return p.deliver(cand, normalizedInput, false)

	case provider.StatusLoading:
		return types.Result{Err: types.ErrAllProvidersFailed, Detail: "secondary provider busy"}

	default:
		detail := out.Detail
		if detail == "" {
			detail = phase.lastDetail
		}
		return types.Result{
			Err:    types.ErrAllProvidersFailed,
			Detail: httputil.Truncate(detail, detailLimit),
		}
	}
}

// detailLimit caps diagnostic strings surfaced to callers.
const detailLimit = 200

// deliver builds the success result. The reported similarity is the
// unfiltered duplicate-detection variant, distinct from the filtered score
// used for gating inside the retry loop.
func (p *Pipeline) deliver(c types.Candidate, normalizedInput string, bestEffort bool) types.Result {
	return types.Result{
		Text:        c.NormalizedText,
		Provider:    c.Provider,
		Similarity:  score.RawSimilarity(normalizedInput, c.NormalizedText),
		LengthRatio: c.LengthRatio,
		BestEffort:  bestEffort,
	}
}
