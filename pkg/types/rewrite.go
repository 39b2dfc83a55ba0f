package types

// ProviderID identifies which text-generation service produced a candidate.
type ProviderID string

const (
	ProviderPrimary   ProviderID = "primary"
	ProviderSecondary ProviderID = "secondary"
)

// Candidate is one rewrite attempt after normalization and scoring.
// Immutable once created; discarded after evaluation unless retained as the
// best candidate seen so far.
type Candidate struct {
	// RawText is the provider output before normalization.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// NormalizedText is the cleaned output actually delivered to callers.
	NormalizedText string `json:"normalized_text" yaml:"normalized_text"`

	// Similarity is the token-overlap score against the normalized input,
	// in [0, 1].
	Similarity float64 `json:"similarity" yaml:"similarity"`

	// LengthRatio is output words divided by input words.
	LengthRatio float64 `json:"length_ratio" yaml:"length_ratio"`

	// Provider identifies which service produced this candidate.
	Provider ProviderID `json:"provider" yaml:"provider"`
}

// ErrorKind classifies terminal pipeline failures. Transient conditions
// (busy providers, unreachable hosts, malformed responses) are absorbed by
// the retry loop and never surface as an ErrorKind.
type ErrorKind string

const (
	// ErrEmptyInput means the caller violated the minimum-length contract.
	ErrEmptyInput ErrorKind = "empty_input"

	// ErrGenerationTooShort means the final candidate normalized to under
	// 10 characters.
	ErrGenerationTooShort ErrorKind = "generation_too_short"

	// ErrAllProvidersFailed means both provider phases exhausted with no
	// usable candidate.
	ErrAllProvidersFailed ErrorKind = "all_providers_failed"

	// ErrInternal covers any unanticipated fault caught at the pipeline
	// boundary.
	ErrInternal ErrorKind = "internal_error"
)

// Result is the terminal outcome of one rewrite invocation.
type Result struct {
	// Text is the rewritten text. Empty on failure.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Provider is the service that produced Text.
	Provider ProviderID `json:"provider,omitempty" yaml:"provider,omitempty"`

	// Similarity is the client-facing duplicate-detection score between the
	// input and Text (unfiltered token overlap).
	Similarity float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`

	// LengthRatio is output words divided by input words.
	LengthRatio float64 `json:"length_ratio,omitempty" yaml:"length_ratio,omitempty"`

	// BestEffort marks a result delivered after exhausting retries without
	// any candidate passing the acceptance gate.
	BestEffort bool `json:"best_effort,omitempty" yaml:"best_effort,omitempty"`

	// Err is set on failure; empty on success.
	Err ErrorKind `json:"error,omitempty" yaml:"error,omitempty"`

	// Detail is a truncated diagnostic string accompanying Err.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// OK reports whether the invocation produced a rewritten text.
func (r Result) OK() bool { return r.Err == "" }
