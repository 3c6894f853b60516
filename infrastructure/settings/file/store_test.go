package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "linkoff-engine/core/errors"
)

func TestStore_ReadsCommentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{
	// hide everything mentioning polls
	"feed-keywords": "poll",
	/* gentle mode off */
	"gentle-mode": false,
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := NewStore(path).Get(context.Background(), []string{"feed-keywords", "gentle-mode", "dark-mode"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"feed-keywords": "poll", "gentle-mode": false}, got)
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "none.json"))

	got, err := store.Get(context.Background(), []string{"dark-mode"})

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SetWritesAndNotifies(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.json")
	store := NewStore(path)

	var notes []map[string]any
	store.OnChanged(func(c map[string]any) { notes = append(notes, c) })

	require.NoError(t, store.Set(ctx, map[string]any{"dark-mode": true}))
	require.NoError(t, store.Set(ctx, map[string]any{"dark-mode": true, "hide-news": true}))

	got, err := NewStore(path).Get(ctx, []string{"dark-mode", "hide-news"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"dark-mode": true, "hide-news": true}, got)
	assert.Equal(t, []map[string]any{{"dark-mode": true}, {"hide-news": true}}, notes)
}

func TestStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dark-mode": `), 0o600))

	_, err := NewStore(path).Get(context.Background(), []string{"dark-mode"})

	assert.True(t, coreerrors.IsStore(err))
}
