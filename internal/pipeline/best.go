// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"github.com/pdiddy/rewrite-engine/internal/score"
	"github.com/pdiddy/rewrite-engine/pkg/types"
)

// bestTracker retains the highest-similarity candidate seen during one
// retry phase. Near-verbatim candidates (similarity >= 0.95) are never
// retained; returning a no-op rewrite as best effort would defeat the point.
// The slot lives for a single request and is owned by one goroutine.
type bestTracker struct {
	best *types.Candidate
}

// consider records c if it strictly beats the current best.
func (t *bestTracker) consider(c types.Candidate) {
	if score.NearVerbatim(c.Similarity) {
		return
	}
	if t.best == nil || c.Similarity > t.best.Similarity {
		kept := c
		t.best = &kept
	}
}
