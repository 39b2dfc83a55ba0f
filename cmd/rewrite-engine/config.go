// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"
	"net/http"

	"github.com/spf13/viper"

	"github.com/pdiddy/rewrite-engine/internal/pipeline"
	"github.com/pdiddy/rewrite-engine/internal/provider"
	"github.com/pdiddy/rewrite-engine/internal/secrets"
	"github.com/pdiddy/rewrite-engine/pkg/types"
)

func setConfigDefaults() {
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("http.user_agent", "rewrite-engine/"+version)

	viper.SetDefault("primary.base_url", "https://api-inference.huggingface.co/models")
	viper.SetDefault("primary.model", "tuner007/pegasus_paraphrase")

	viper.SetDefault("secondary.base_url", "https://api.openai.com/v1")
	viper.SetDefault("secondary.model", "gpt-4o-mini")

	viper.SetDefault("retry.max_attempts", 5)
	viper.SetDefault("retry.backoff_base", "1s")

	viper.SetDefault("history.path", "data/history.db")
	viper.SetDefault("history.max_results", 20)
}

// pipelineConfig assembles the typed configuration from viper and the
// secrets directory. Built once per command invocation and passed by value;
// nothing below the CLI reads viper or the environment.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		HTTP: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		Primary: types.ProviderConfig{
			BaseURL: viper.GetString("primary.base_url"),
			Model:   viper.GetString("primary.model"),
			APIKey:  secrets.Get(loadedSecrets, "primary-api-key", viper.GetString("primary.api_key")),
		},
		Secondary: types.ProviderConfig{
			BaseURL: viper.GetString("secondary.base_url"),
			Model:   viper.GetString("secondary.model"),
			APIKey:  secrets.Get(loadedSecrets, "secondary-api-key", viper.GetString("secondary.api_key")),
		},
		Retry: types.RetryConfig{
			MaxAttempts: viper.GetInt("retry.max_attempts"),
			BackoffBase: viper.GetDuration("retry.backoff_base"),
		},
		History: types.HistoryConfig{
			Path:       viper.GetString("history.path"),
			MaxResults: viper.GetInt("history.max_results"),
		},
	}
}

// buildPipeline wires provider clients from the configuration.
func buildPipeline(cfg types.PipelineConfig, log io.Writer) *pipeline.Pipeline {
	client := &http.Client{Timeout: cfg.HTTP.Timeout}

	primary := &provider.PrimaryClient{
		Client:    client,
		Config:    cfg.Primary,
		UserAgent: cfg.HTTP.UserAgent,
	}
	secondary := &provider.SecondaryClient{
		Client:    client,
		Config:    cfg.Secondary,
		UserAgent: cfg.HTTP.UserAgent,
	}

	return pipeline.New(primary, secondary, cfg.Retry, log)
}
