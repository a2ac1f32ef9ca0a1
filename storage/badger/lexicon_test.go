package badger

import (
	"context"
	"testing"

	"github.com/philocalyst/emoji-search/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferences(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	empty, err := repo.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.PutPreferences(ctx, map[string]core.EntityID{
		"wave": "🌊",
		"a":    "🅰️",
	}))
	require.NoError(t, repo.PutPreferences(ctx, map[string]core.EntityID{
		"wave":    "👋",
		"amazing": "💯",
	}))

	got, err := repo.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]core.EntityID{"wave": "👋", "amazing": "💯"}, got)
}

func TestTopWords(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	words := make([]string, 300)
	for i := range words {
		words[i] = string(rune('a'+i%26)) + string(rune('a'+i/26))
	}
	require.NoError(t, repo.PutTopWords(ctx, words))

	got, err := repo.GetTopWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, words, got)

	require.NoError(t, repo.PutTopWords(ctx, []string{"the", "of"}))
	got, err = repo.GetTopWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "of"}, got)
}

func TestGlossary(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	glossary := map[string][]core.EntityID{
		"0":    {"0️⃣", "✊"},
		"wave": {"👋", "🌊"},
	}
	require.NoError(t, repo.PutGlossary(ctx, glossary))

	got, err := repo.GetGlossary(ctx)
	require.NoError(t, err)
	assert.Equal(t, glossary, got)
}

func TestInfoAndClear(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	info, err := repo.LoadInfo(ctx)
	require.NoError(t, err)
	assert.Nil(t, info)

	require.NoError(t, repo.SaveInfo(ctx, &core.DatasetInfo{Checksum: 99, Emojis: 1, Keywords: 2}))
	_, err = repo.PutEmojis(ctx, core.RecordFromEntry(core.Entry{Entity: "🐙", Keywords: []string{"octopus"}}, 0))
	require.NoError(t, err)
	require.NoError(t, repo.PutTopWords(ctx, []string{"the"}))

	info, err = repo.LoadInfo(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, core.ID(99), info.Checksum)
	assert.False(t, info.ImportedAt.IsZero())

	require.NoError(t, repo.Clear(ctx))

	info, err = repo.LoadInfo(ctx)
	require.NoError(t, err)
	assert.Nil(t, info)

	all, err := repo.GetAllEmojis(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	words, err := repo.GetTopWords(ctx)
	require.NoError(t, err)
	assert.Empty(t, words)
}
