// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rewrite-engine/pkg/types"
)

func newPrimary(ts *httptest.Server, apiKey string) *PrimaryClient {
	return &PrimaryClient{
		Client:    ts.Client(),
		Config:    types.ProviderConfig{BaseURL: ts.URL, Model: "acme/paraphrase", APIKey: apiKey},
		UserAgent: "rewrite-engine/test",
	}
}

func TestPrimaryRequestShape(t *testing.T) {
	var gotPath string
	var gotBody []byte
	var gotReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotReq = r
		gotBody, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, `[{"generated_text":"a rewritten sentence"}]`)
	}))
	defer ts.Close()

	c := newPrimary(ts, "pk-123")
	out := c.Rewrite(context.Background(), "the input text", TuningFor(100))

	require.Equal(t, StatusReady, out.Status)
	assert.Equal(t, "a rewritten sentence", out.Text)
	assert.Equal(t, "/acme/paraphrase", gotPath)
	assert.Equal(t, "Bearer pk-123", gotReq.Header.Get("Authorization"))
	assert.Equal(t, "rewrite-engine/test", gotReq.Header.Get("User-Agent"))

	var payload struct {
		Inputs     string `json:"inputs"`
		Parameters struct {
			MaxLength         int     `json:"max_length"`
			MinLength         int     `json:"min_length"`
			Temperature       float64 `json:"temperature"`
			TopP              float64 `json:"top_p"`
			TopK              int     `json:"top_k"`
			RepetitionPenalty float64 `json:"repetition_penalty"`
			DoSample          bool    `json:"do_sample"`
		} `json:"parameters"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "the input text", payload.Inputs)
	assert.Equal(t, 200, payload.Parameters.MaxLength)
	assert.Equal(t, 50, payload.Parameters.MinLength)
	assert.Equal(t, 0.9, payload.Parameters.Temperature)
	assert.True(t, payload.Parameters.DoSample)
}

func TestPrimaryNoAuthHeaderWithoutKey(t *testing.T) {
	var gotReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		fmt.Fprint(w, `[{"generated_text":"x y z"}]`)
	}))
	defer ts.Close()

	c := newPrimary(ts, "")
	out := c.Rewrite(context.Background(), "the input text", TuningFor(20))

	require.Equal(t, StatusReady, out.Status)
	assert.Empty(t, gotReq.Header.Get("Authorization"))
}

func TestPrimaryModelLoadingMapsToLoading(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":"Model acme/paraphrase is currently loading","estimated_time":20}`)
	}))
	defer ts.Close()

	out := newPrimary(ts, "").Rewrite(context.Background(), "the input text", TuningFor(20))
	assert.Equal(t, StatusLoading, out.Status)
}

func TestPrimaryResponseKeyProbing(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"generated_text in list", `[{"generated_text":"from generated"}]`, "from generated"},
		{"summary_text in list", `[{"summary_text":"from summary"}]`, "from summary"},
		{"text in object", `{"text":"from text"}`, "from text"},
		{"output in object", `{"output":"from output"}`, "from output"},
		{"result in object", `{"result":"from result"}`, "from result"},
		{"preference order", `{"result":"low","generated_text":"high"}`, "high"},
		{"second element carries text", `[{"score":0.5},{"generated_text":"from second"}]`, "from second"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			out := newPrimary(ts, "").Rewrite(context.Background(), "the input text", TuningFor(20))
			require.Equal(t, StatusReady, out.Status, "body %s", tt.body)
			assert.Equal(t, tt.want, out.Text)
		})
	}
}

func TestPrimaryInvalidResponseFormat(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown keys", `{"message":"hello"}`},
		{"blank text", `{"generated_text":"   "}`},
		{"non-string value", `{"generated_text":42}`},
		{"empty list", `[]`},
		{"not json", `<html>oops</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			out := newPrimary(ts, "").Rewrite(context.Background(), "the input text", TuningFor(20))
			require.Equal(t, StatusError, out.Status)
			assert.Equal(t, "invalid response format", out.Detail)
		})
	}
}

func TestPrimaryHTTPErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream broke")
	}))
	defer ts.Close()

	out := newPrimary(ts, "").Rewrite(context.Background(), "the input text", TuningFor(20))
	require.Equal(t, StatusError, out.Status)
	assert.Contains(t, out.Detail, "HTTP 502")
	assert.Contains(t, out.Detail, "upstream broke")
}

func TestPrimaryUnreachableHost(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close()

	c := &PrimaryClient{
		Client: &http.Client{},
		Config: types.ProviderConfig{BaseURL: ts.URL, Model: "acme/paraphrase"},
	}
	out := c.Rewrite(context.Background(), "the input text", TuningFor(20))
	assert.Equal(t, StatusError, out.Status)
	assert.Contains(t, out.Detail, "primary provider request")
}
