// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/pdiddy/rewrite-engine/internal/provider"
	"github.com/pdiddy/rewrite-engine/internal/score"
	"github.com/pdiddy/rewrite-engine/internal/textnorm"
	"github.com/pdiddy/rewrite-engine/pkg/types"
)

// Sleeper waits for d or until ctx is done. Injected so tests run the full
// retry sequence without real sleeping.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleepWith(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// phaseState is the terminal state of one provider retry phase.
type phaseState string

const (
	phaseSucceeded         phaseState = "succeeded"
	phaseExhaustedWithBest phaseState = "exhausted_with_best"
	phaseExhaustedNoResult phaseState = "exhausted_no_result"
)

type phaseResult struct {
	state      phaseState
	candidate  *types.Candidate
	lastDetail string
}

// retryController drives repeated calls against a single provider: bounded
// attempts, exponential backoff on a busy provider, stop on the first
// acceptable candidate.
type retryController struct {
	maxAttempts int
	backoff     func(attempt int) time.Duration
	sleep       Sleeper
	log         io.Writer
}

// run executes the retry loop. An acceptable candidate ends the phase
// immediately; a non-passing candidate only updates the best-so-far slot and
// the loop continues. Errors count as spent attempts. The provider is never
// called more than maxAttempts times.
func (rc *retryController) run(ctx context.Context, client provider.Client, input, normalizedInput string, tuning provider.Tuning) phaseResult {
	inputWords := score.WordCount(input)
	var best bestTracker
	var lastDetail string

	for attempt := 0; attempt < rc.maxAttempts; attempt++ {
		out := client.Rewrite(ctx, input, tuning)

		switch out.Status {
		case provider.StatusReady:
			cand := scoreCandidate(out.Text, normalizedInput, inputWords, client.ID())
			if score.Acceptable(cand.Similarity, cand.LengthRatio) {
				return phaseResult{state: phaseSucceeded, candidate: &cand}
			}
			best.consider(cand)

		case provider.StatusLoading:
			lastDetail = fmt.Sprintf("%s provider busy", client.ID())
			if attempt == rc.maxAttempts-1 {
				break
			}
			wait := rc.backoff(attempt)
			fmt.Fprintf(rc.log, "%s provider busy, retrying in %v (attempt %d/%d)\n",
				client.ID(), wait, attempt+1, rc.maxAttempts)
			if err := rc.sleep(ctx, wait); err != nil {
				return exhausted(best, err.Error())
			}

		case provider.StatusError:
			lastDetail = out.Detail
			fmt.Fprintf(rc.log, "%s provider attempt %d/%d failed: %s\n",
				client.ID(), attempt+1, rc.maxAttempts, out.Detail)
		}
	}

	return exhausted(best, lastDetail)
}

func exhausted(best bestTracker, detail string) phaseResult {
	if best.best != nil {
		return phaseResult{state: phaseExhaustedWithBest, candidate: best.best, lastDetail: detail}
	}
	return phaseResult{state: phaseExhaustedNoResult, lastDetail: detail}
}

// scoreCandidate normalizes raw provider output and scores it against the
// normalized input. The filtered similarity variant gates acceptance; the
// length ratio compares word counts against the original input.
func scoreCandidate(raw, normalizedInput string, inputWords int, id types.ProviderID) types.Candidate {
	normalized := textnorm.Normalize(raw)
	return types.Candidate{
		RawText:        raw,
		NormalizedText: normalized,
		Similarity:     score.Similarity(normalizedInput, normalized),
		LengthRatio:    score.Ratio(inputWords, score.WordCount(normalized)),
		Provider:       id,
	}
}

// exponentialBackoff doubles from base each attempt: base, 2*base, 4*base...
func exponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(math.Pow(2, float64(attempt))) * base
	}
}
