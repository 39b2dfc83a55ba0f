// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rewrite-engine/internal/provider"
	"github.com/pdiddy/rewrite-engine/pkg/types"
)

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRewriteAll(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	writeInput(t, inDir, "story.txt", inputText)
	writeInput(t, inDir, "stub.txt", "tiny") // violates the minimum-length contract
	writeInput(t, inDir, "notes.md", "ignored, wrong extension")

	primary := &fakeClient{id: types.ProviderPrimary, outcomes: []provider.Outcome{provider.Ready(goodParaphrase)}}
	secondary := &fakeClient{id: types.ProviderSecondary, outcomes: []provider.Outcome{provider.Errorf("unused")}}
	p, _ := newTestPipeline(primary, secondary)

	var out bytes.Buffer
	summary, err := RewriteAll(context.Background(), p, inDir, outDir, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Rewritten)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 2, summary.Total())
	assert.True(t, summary.HasFailures())

	// The result file round-trips through YAML.
	data, err := os.ReadFile(filepath.Join(outDir, "story-rewrite.yaml"))
	require.NoError(t, err)
	var result types.Result
	require.NoError(t, yaml.Unmarshal(data, &result))
	assert.Equal(t, goodParaphrase, result.Text)
	assert.Equal(t, types.ProviderPrimary, result.Provider)

	assert.Contains(t, out.String(), "rewrote story")
	assert.Contains(t, out.String(), "failed  stub")
}

func TestRewriteAllSkipsUnchanged(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeInput(t, inDir, "story.txt", inputText)

	primary := &fakeClient{id: types.ProviderPrimary, outcomes: []provider.Outcome{provider.Ready(goodParaphrase)}}
	secondary := &fakeClient{id: types.ProviderSecondary, outcomes: []provider.Outcome{provider.Errorf("unused")}}
	p, _ := newTestPipeline(primary, secondary)

	var out bytes.Buffer
	first, err := RewriteAll(context.Background(), p, inDir, outDir, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Rewritten)

	second, err := RewriteAll(context.Background(), p, inDir, outDir, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, 0, second.Rewritten)
	assert.Equal(t, 1, primary.calls, "unchanged input must not hit the provider again")
}

func TestRewriteAllMissingDir(t *testing.T) {
	p, _ := newTestPipeline(
		&fakeClient{id: types.ProviderPrimary, outcomes: []provider.Outcome{provider.Errorf("unused")}},
		&fakeClient{id: types.ProviderSecondary, outcomes: []provider.Outcome{provider.Errorf("unused")}})

	_, err := RewriteAll(context.Background(), p, filepath.Join(t.TempDir(), "missing"), t.TempDir(), &bytes.Buffer{})
	assert.Error(t, err)
}
