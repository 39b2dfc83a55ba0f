// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import "strings"

// Acceptance bounds. A candidate passes when its similarity sits strictly
// inside (simFloor, simCeiling) and its length ratio inside
// [minLengthRatio, maxLengthRatio].
const (
	simFloor   = 0.5
	simCeiling = 0.95

	minLengthRatio = 0.5
	maxLengthRatio = 2.0
)

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Ratio returns outputWords / inputWords, or 0 when the input has no words.
func Ratio(inputWords, outputWords int) float64 {
	if inputWords <= 0 {
		return 0
	}
	return float64(outputWords) / float64(inputWords)
}

// RatioAcceptable reports whether the length ratio is within bounds,
// guarding against providers that truncate aggressively or pad runaway
// output.
func RatioAcceptable(ratio float64) bool {
	return ratio >= minLengthRatio && ratio <= maxLengthRatio
}

// NearVerbatim reports whether similarity marks a near-duplicate rewrite.
// The ceiling is inclusive: 0.95 itself is still a no-op rewrite.
func NearVerbatim(similarity float64) bool {
	return similarity >= simCeiling
}

// Acceptable is the combined acceptance gate. A candidate passing it is
// returned immediately; the pipeline does not keep searching.
func Acceptable(similarity, lengthRatio float64) bool {
	return similarity > simFloor && similarity < simCeiling && RatioAcceptable(lengthRatio)
}
