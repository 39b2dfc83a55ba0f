// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rewrite-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Path: filepath.Join(t.TempDir(), "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "the first input text", types.Result{
		Text:        "the first rewrite",
		Provider:    types.ProviderPrimary,
		Similarity:  0.72,
		LengthRatio: 1.1,
	}))
	require.NoError(t, s.Save(ctx, "the second input text", types.Result{
		Err:    types.ErrAllProvidersFailed,
		Detail: "secondary down",
	}))

	records, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Most recent first.
	assert.Equal(t, "all_providers_failed", records[0].Outcome)
	assert.Equal(t, "secondary down", records[0].Detail)

	assert.Equal(t, "success", records[1].Outcome)
	assert.Equal(t, types.ProviderPrimary, records[1].Provider)
	assert.InDelta(t, 0.72, records[1].Similarity, 1e-9)
	assert.Equal(t, len("the first input text"), records[1].InputChars)
	assert.Len(t, records[1].InputSHA, 12)
	assert.False(t, records[1].CreatedAt.IsZero())
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Save(ctx, "some input text here", types.Result{Text: "out", Provider: types.ProviderPrimary}))
	}

	records, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRecentDefaultLimit(t *testing.T) {
	s, err := NewStore(types.HistoryConfig{Path: filepath.Join(t.TempDir(), "history.db"), MaxResults: 2})
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Save(ctx, "some input text here", types.Result{Text: "out"}))
	}

	records, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestBestEffortRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "some input text here", types.Result{
		Text: "out", Provider: types.ProviderPrimary, BestEffort: true,
	}))

	records, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].BestEffort)
}

func TestNewStoreRequiresPath(t *testing.T) {
	_, err := NewStore(types.HistoryConfig{})
	assert.Error(t, err)
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := NewStore(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(context.Background(), "some input text here", types.Result{Text: "out"}))
}
