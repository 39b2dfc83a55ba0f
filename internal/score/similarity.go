// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score provides the cheap acceptance signals for rewrite candidates:
// bag-of-words overlap and word-count ratio. Deliberately not semantic; the
// point is rejecting near-duplicate and near-unrelated outputs without a
// model call.
package score

import "strings"

// filterMinLen drops tokens of this length or shorter in the filtered
// similarity variant, trimming stopword noise at the margins.
const filterMinLen = 2

// Similarity returns |A ∩ B| / max(|A|, |B|) over lowercased whitespace
// tokens, ignoring tokens of length <= 2. This is the variant used for
// candidate gating and provider-fallback comparisons.
func Similarity(a, b string) float64 {
	return overlap(tokenSet(a, filterMinLen), tokenSet(b, filterMinLen))
}

// RawSimilarity is the unfiltered variant: every token counts. Used for the
// simpler duplicate-detection score reported to callers. Kept separate from
// Similarity; the two are not interchangeable at their call sites.
func RawSimilarity(a, b string) float64 {
	return overlap(tokenSet(a, 0), tokenSet(b, 0))
}

func tokenSet(s string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if len(tok) <= minLen {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// overlap returns 0 when either set is empty; that is a defined score, not
// an error.
func overlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return float64(inter) / float64(larger)
}
