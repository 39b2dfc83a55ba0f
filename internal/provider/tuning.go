// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

const (
	// maxLengthCap bounds the generation budget regardless of input size.
	maxLengthCap = 1024

	// minLengthFloor keeps tiny inputs from requesting degenerate outputs.
	minLengthFloor = 20
)

// Tuning holds per-request generation hyperparameters. Length bounds are
// derived from the input; the sampling parameters are fixed and opaque
// beyond being passed through to the provider.
type Tuning struct {
	MaxLength         int
	MinLength         int
	Temperature       float64
	TopP              float64
	TopK              int
	RepetitionPenalty float64
}

// TuningFor derives generation bounds from the input length in characters:
// max twice the input capped at 1024, min half the input floored at 20.
func TuningFor(inputLen int) Tuning {
	maxLen := inputLen * 2
	if maxLen > maxLengthCap {
		maxLen = maxLengthCap
	}
	minLen := inputLen / 2
	if minLen < minLengthFloor {
		minLen = minLengthFloor
	}
	return Tuning{
		MaxLength:         maxLen,
		MinLength:         minLen,
		Temperature:       0.9,
		TopP:              0.95,
		TopK:              50,
		RepetitionPenalty: 1.2,
	}
}
