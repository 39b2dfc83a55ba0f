// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pdiddy/rewrite-engine/internal/httputil"
	"github.com/pdiddy/rewrite-engine/pkg/types"
)

// detailLimit caps provider body excerpts carried in error outcomes.
const detailLimit = 200

// textKeys are the response fields probed for generated text, in preference
// order. Hosted-inference deployments disagree on the field name.
var textKeys = []string{"generated_text", "summary_text", "text", "output", "result"}

// PrimaryClient calls a hosted-inference text-generation endpoint. The
// request is the inputs-plus-parameters shape; HTTP 503 means the model is
// still loading and maps to StatusLoading.
type PrimaryClient struct {
	Client    *http.Client
	Config    types.ProviderConfig
	UserAgent string
}

// ID returns the provider identifier.
func (c *PrimaryClient) ID() types.ProviderID { return types.ProviderPrimary }

type primaryParameters struct {
	MaxLength         int     `json:"max_length"`
	MinLength         int     `json:"min_length"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
	TopK              int     `json:"top_k"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
	DoSample          bool    `json:"do_sample"`
}

type primaryOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type primaryRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters primaryParameters `json:"parameters"`
	Options    primaryOptions    `json:"options"`
}

// Rewrite sends one generation request and classifies the response.
func (c *PrimaryClient) Rewrite(ctx context.Context, text string, tuning Tuning) Outcome {
	payload := primaryRequest{
		Inputs: text,
		Parameters: primaryParameters{
			MaxLength:         tuning.MaxLength,
			MinLength:         tuning.MinLength,
			Temperature:       tuning.Temperature,
			TopP:              tuning.TopP,
			TopK:              tuning.TopK,
			RepetitionPenalty: tuning.RepetitionPenalty,
			DoSample:          true,
		},
	}

	url := strings.TrimRight(c.Config.BaseURL, "/") + "/" + c.Config.Model

	headers := map[string]string{"User-Agent": c.UserAgent}
	if c.Config.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.Config.APIKey
	}

	status, body, err := httputil.PostJSON(ctx, c.Client, url, headers, payload)
	if err != nil {
		return Errorf("primary provider request: %v", err)
	}

	switch {
	case status == http.StatusServiceUnavailable:
		return Loading()
	case status != http.StatusOK:
		return Errorf("primary provider returned HTTP %d: %s", status, httputil.Truncate(string(body), detailLimit))
	}

	generated, ok := probeText(body)
	if !ok {
		return Errorf("invalid response format")
	}
	return Ready(generated)
}

// probeText locates the generated text in a response body. The body is
// either a list of objects or a single object; the first known key holding a
// non-blank string wins.
func probeText(body []byte) (string, bool) {
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err == nil {
		for _, obj := range list {
			if s, ok := probeKeys(obj); ok {
				return s, true
			}
		}
		return "", false
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		return probeKeys(obj)
	}
	return "", false
}

func probeKeys(obj map[string]any) (string, bool) {
	for _, key := range textKeys {
		if v, ok := obj[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return "", false
}
