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

// rewriteSystemPrompt frames the fallback request. The secondary provider is
// a general chat model, so the instruction carries the task.
const rewriteSystemPrompt = "You rewrite text so it reads as natural human writing. " +
	"Keep the meaning, change the wording. Respond with the rewritten text only."

// SecondaryClient calls a chat-completions endpoint. It is the deliberately
// simpler fallback path: one message exchange, no provider-side streaming.
type SecondaryClient struct {
	Client    *http.Client
	Config    types.ProviderConfig
	UserAgent string
}

// ID returns the provider identifier.
func (c *SecondaryClient) ID() types.ProviderID { return types.ProviderSecondary }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type secondaryRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type secondaryResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Rewrite sends one chat-completion request and classifies the response.
func (c *SecondaryClient) Rewrite(ctx context.Context, text string, tuning Tuning) Outcome {
	payload := secondaryRequest{
		Model: c.Config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: rewriteSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: tuning.Temperature,
		MaxTokens:   tuning.MaxLength,
	}

	url := strings.TrimRight(c.Config.BaseURL, "/") + "/chat/completions"

	headers := map[string]string{"User-Agent": c.UserAgent}
	if c.Config.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.Config.APIKey
	}

	status, body, err := httputil.PostJSON(ctx, c.Client, url, headers, payload)
	if err != nil {
		return Errorf("secondary provider request: %v", err)
	}

	switch {
	case status == http.StatusServiceUnavailable:
		return Loading()
	case status != http.StatusOK:
		return Errorf("secondary provider returned HTTP %d: %s", status, httputil.Truncate(string(body), detailLimit))
	}

	var parsed secondaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Errorf("invalid response format")
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return Errorf("invalid response format")
	}
	return Ready(parsed.Choices[0].Message.Content)
}
