package types

import "time"

// HTTPConfig holds shared HTTP settings used by provider clients.
type HTTPConfig struct {
	// Timeout is the per-call HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "rewrite-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderConfig holds the settings for one text-generation provider.
// Constructed once at process start and passed into provider constructors;
// provider code never reads the environment directly.
type ProviderConfig struct {
	// BaseURL is the provider API root (e.g. the hosted-inference base or
	// a chat-completions base). Tests point this at an httptest server.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the model identifier appended to or sent with requests.
	Model string `json:"model" yaml:"model"`

	// APIKey is the bearer token for the provider, if any.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// RetryConfig holds the retry budget for the primary provider phase.
type RetryConfig struct {
	// MaxAttempts is the total number of provider calls per request (default 5).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// BackoffBase is the base duration for exponential backoff between
	// attempts (default 1s). The wait before attempt n+1 is 2^n * BackoffBase.
	BackoffBase time.Duration `json:"backoff_base" yaml:"backoff_base"`
}

// HistoryConfig holds settings for the rewrite history store.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history recording.
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default number of records listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all settings for the rewrite pipeline.
type PipelineConfig struct {
	HTTP      HTTPConfig     `json:"http" yaml:"http"`
	Primary   ProviderConfig `json:"primary" yaml:"primary"`
	Secondary ProviderConfig `json:"secondary" yaml:"secondary"`
	Retry     RetryConfig    `json:"retry" yaml:"retry"`
	History   HistoryConfig  `json:"history" yaml:"history"`
}
