package search

import (
	"context"
	"testing"

	"github.com/philocalyst/emoji-search/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phraseFixture() core.DatasetSource {
	return core.DatasetSource{
		Entries: entries(
			"😊", []string{"smiling face with smiling eyes", "blush"},
			"🤗", []string{"smiling face with open hands", "hug"},
			"🙂", []string{"smiling face"},
			"☹️", []string{"frowning face"},
			"🫂", []string{"people hugging"},
			"🧍", []string{"people", "hug"},
		),
	}
}

func TestMatchPhrase(t *testing.T) {
	searcher := newTestSearcher(t, phraseFixture())
	ctx := context.Background()

	tests := []struct {
		name     string
		phrase   string
		expected []core.EntityID
	}{
		{
			name:     "exact in order, then fewer keyword words",
			phrase:   "smiling face",
			expected: ids("🙂", "🤗", "😊"),
		},
		{
			name:     "in order inside a keyword",
			phrase:   "with open",
			expected: ids("🤗"),
		},
		{
			name:     "out of order",
			phrase:   "face smiling",
			expected: ids("🙂", "🤗", "😊"),
		},
		{
			name:     "multi-word keyword beats jointed words",
			phrase:   "people hug",
			expected: ids("🫂", "🧍"),
		},
		{
			name:     "exact multi-word keyword",
			phrase:   "people hugging",
			expected: ids("🫂"),
		},
		{
			name:     "no match",
			phrase:   "purple rain",
			expected: []core.EntityID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := searcher.MatchPhrase(ctx, tt.phrase, core.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, results)
		})
	}
}

// A keyword that matches every query word but one earns nothing for the
// words it did match. The smiling faces share "face" with the query yet are
// dropped entirely.
func TestMatchPhrase_OutOfOrderUnmatchedWordZeroesKeyword(t *testing.T) {
	searcher := newTestSearcher(t, phraseFixture())

	results, err := searcher.MatchPhrase(context.Background(), "face frowning", core.Options{})
	require.NoError(t, err)
	assert.Equal(t, ids("☹️"), results)

	exact, prefix := countMatches([]string{"face", "frowning"}, []string{"smiling", "face"})
	assert.Zero(t, exact)
	assert.Zero(t, prefix)
}

func TestMatchPhrase_CustomPreferred(t *testing.T) {
	searcher := newTestSearcher(t, core.DatasetSource{
		Entries: entries(
			"🙂", []string{"smiling face"},
			"😀", []string{"grinning face", "smiling face"},
		),
	})
	ctx := context.Background()

	results, err := searcher.MatchPhrase(ctx, "smiling face", core.Options{})
	require.NoError(t, err)
	assert.Equal(t, ids("🙂", "😀"), results)

	results, err = searcher.MatchPhrase(ctx, "smiling face", core.Options{
		CustomPreferred: map[string]core.EntityID{"Smiling Face": "😀"},
	})
	require.NoError(t, err)
	assert.Equal(t, ids("😀", "🙂"), results)
}

func TestMatchPhrase_Counts(t *testing.T) {
	searcher := newTestSearcher(t, core.DatasetSource{
		Entries: entries(
			"🔥", []string{"hotter", "spicy"},
			"🌶️", []string{"hot", "spicy"},
			"🍜", []string{"spicy hot soup"},
		),
	})

	// 🍜 matches a multi-word keyword out of order, 🌶️ has two exact jointed
	// words and 🔥 one exact and one prefix.
	results, err := searcher.MatchPhrase(context.Background(), "hot spicy", core.Options{})
	require.NoError(t, err)
	assert.Equal(t, ids("🍜", "🌶️", "🔥"), results)
}

func TestMatchPhrase_ShorterKeywordSkipped(t *testing.T) {
	searcher := newTestSearcher(t, core.DatasetSource{
		Entries: entries(
			"🐶", []string{"dog face", "good boy"},
		),
	})

	// "dog face" has fewer words than the query, so it is not counted out of
	// order, and the jointed words miss "very".
	results, err := searcher.MatchPhrase(context.Background(), "face dog very", core.Options{})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = searcher.MatchPhrase(context.Background(), "face dog good", core.Options{})
	require.NoError(t, err)
	assert.Equal(t, ids("🐶"), results)
}

func TestCountMatches(t *testing.T) {
	tests := []struct {
		name       string
		words      []string
		candidates []string
		exact      int
		prefix     int
	}{
		{"all exact", []string{"hot", "dog"}, []string{"dog", "hot"}, 2, 0},
		{"prefix", []string{"ho", "dog"}, []string{"hot", "dog"}, 1, 1},
		{"exact wins over earlier prefix", []string{"hot"}, []string{"hotter", "hot"}, 1, 0},
		{"unmatched word", []string{"hot", "cat"}, []string{"hot", "dog"}, 0, 0},
		{"no words", nil, []string{"hot"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exact, prefix := countMatches(tt.words, tt.candidates)
			assert.Equal(t, tt.exact, exact)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}
