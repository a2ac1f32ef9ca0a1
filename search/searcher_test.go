package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/philocalyst/emoji-search/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearcher(t *testing.T, src core.DatasetSource, opts ...Option) *Searcher {
	t.Helper()
	ds, err := core.NewDataset(src)
	require.NoError(t, err)
	searcher, err := NewSearcher(ds, opts...)
	require.NoError(t, err)
	t.Cleanup(searcher.Release)
	return searcher
}

func entries(pairs ...any) []core.Entry {
	var result []core.Entry
	for i := 0; i < len(pairs); i += 2 {
		result = append(result, core.Entry{
			Entity:   core.EntityID(pairs[i].(string)),
			Keywords: pairs[i+1].([]string),
		})
	}
	return result
}

func ids(values ...string) []core.EntityID {
	result := make([]core.EntityID, len(values))
	for i, v := range values {
		result[i] = core.EntityID(v)
	}
	return result
}

func fixture() core.DatasetSource {
	return core.DatasetSource{
		Entries: entries(
			"👋", []string{"waving hand", "wave", "hello", "goodbye"},
			"🌊", []string{"water wave", "wave", "ocean", "sea"},
			"🫂", []string{"people hugging", "hug", "comfort"},
			"😢", []string{"crying face", "sad", "tear", "cry"},
			"😊", []string{"smiling face with smiling eyes", "happy", "blush", "smile"},
			"🐶", []string{"dog face", "dog", "puppy", "pet"},
			"🐕", []string{"dog", "pet", "doggy"},
			"🌭", []string{"hot dog", "food", "sausage"},
		),
		Preferred: map[string]core.EntityID{"wave": "👋", "dog": "🐕"},
		TopWords:  []string{"the", "of", "hand", "water", "dog"},
	}
}

func TestNewSearcher(t *testing.T) {
	ds, err := core.NewDataset(fixture())
	require.NoError(t, err)

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(ds)
		require.NoError(t, err)
		defer searcher.Release()
		assert.Same(t, ds, searcher.Dataset())
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(ds, WithLogger(slog.Default()))
		require.NoError(t, err)
		searcher.Release()
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(ds, WithLogger(nil))
		require.NoError(t, err)
		defer searcher.Release()
		assert.NotNil(t, searcher.logger)
	})

	t.Run("with pool size", func(t *testing.T) {
		searcher, err := NewSearcher(ds, WithPoolSize(3))
		require.NoError(t, err)
		defer searcher.Release()
		assert.Equal(t, 3, searcher.pool.Cap())
	})

	t.Run("pool size below one is clamped", func(t *testing.T) {
		searcher, err := NewSearcher(ds, WithPoolSize(-4))
		require.NoError(t, err)
		defer searcher.Release()
		assert.Equal(t, 1, searcher.pool.Cap())
	})

	t.Run("option error", func(t *testing.T) {
		boom := fmt.Errorf("boom")
		_, err := NewSearcher(ds, func(*Searcher) error { return boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil dataset", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrDatasetRequired, err)
	})
}

func TestSearch_BlankQuery(t *testing.T) {
	searcher := newTestSearcher(t, fixture())
	ctx := context.Background()

	for _, query := range []string{"", "   ", "?!", "(...)", " - "} {
		t.Run(fmt.Sprintf("%q", query), func(t *testing.T) {
			results, err := searcher.Search(ctx, query)
			require.NoError(t, err)
			assert.NotNil(t, results)
			assert.Empty(t, results)

			results, err = searcher.SearchBestMatching(ctx, query)
			require.NoError(t, err)
			assert.NotNil(t, results)
			assert.Empty(t, results)
		})
	}
}

func TestSearch_LiteralEntity(t *testing.T) {
	searcher := newTestSearcher(t, fixture())
	ctx := context.Background()

	for _, limit := range []int{1, 2, 24} {
		results, err := searcher.Search(ctx, "🐶", WithLimit(limit))
		require.NoError(t, err)
		assert.Equal(t, ids("🐶"), results)
	}

	results, err := searcher.Search(ctx, "  🌭  ")
	require.NoError(t, err)
	assert.Equal(t, ids("🌭"), results)

	results, err = searcher.Search(ctx, "🦄")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_SingleWord(t *testing.T) {
	searcher := newTestSearcher(t, fixture())
	ctx := context.Background()

	results, err := searcher.Search(ctx, "Wave!")
	require.NoError(t, err)
	// Both carry "wave" exactly; the global preference decides.
	assert.Equal(t, ids("👋", "🌊"), results)

	results, err = searcher.Search(ctx, "dog")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, core.EntityID("🐕"), results[0])
	assert.ElementsMatch(t, ids("🐕", "🐶", "🌭"), results)
}

func TestSearch_Phrase(t *testing.T) {
	searcher := newTestSearcher(t, fixture())
	ctx := context.Background()

	monitor := &testMonitor{}
	results, err := searcher.Search(ctx, "Smiling face", WithMonitor(monitor))
	require.NoError(t, err)
	assert.Equal(t, ids("😊"), results)
	assert.Equal(t, []Matcher{MatcherPhrase}, monitor.selected)
	assert.Empty(t, monitor.fallbacks)
}

func TestSearch_Limit(t *testing.T) {
	searcher := newTestSearcher(t, fixture())
	ctx := context.Background()

	for _, query := range []string{"d", "p", "face", "dog face", "s"} {
		unbounded, err := searcher.Search(ctx, query, WithLimit(1000))
		require.NoError(t, err)
		require.NotEmpty(t, unbounded, query)

		for k := 0; k <= len(unbounded)+1; k++ {
			results, err := searcher.Search(ctx, query, WithLimit(k))
			require.NoError(t, err)
			assert.Equal(t, unbounded[:min(k, len(unbounded))], results, "query %q limit %d", query, k)
		}
	}

	results, err := searcher.Search(ctx, "d", WithLimit(-1))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_DefaultLimit(t *testing.T) {
	src := core.DatasetSource{}
	for i := 0; i < 40; i++ {
		src.Entries = append(src.Entries, core.Entry{
			Entity:   core.EntityID(fmt.Sprintf("e%02d", i)),
			Keywords: []string{fmt.Sprintf("star %d", i)},
		})
	}
	searcher := newTestSearcher(t, src)

	results, err := searcher.Search(context.Background(), "star")
	require.NoError(t, err)
	assert.Len(t, results, DefaultLimit)
	// Fully tied entities keep dataset order.
	assert.Equal(t, core.EntityID("e00"), results[0])
	assert.Equal(t, core.EntityID("e23"), results[DefaultLimit-1])
}

func TestSearch_Options(t *testing.T) {
	searcher := newTestSearcher(t, fixture())
	ctx := context.Background()

	opts := core.Options{
		CustomKeywords: map[core.EntityID][]string{"🐶": {"Unicorn"}},
	}
	results, err := searcher.Search(ctx, "unicorn", WithOptions(opts))
	require.NoError(t, err)
	assert.Equal(t, ids("🐶"), results)

	// Options never outlive the call.
	results, err = searcher.Search(ctx, "unicorn")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = searcher.Search(ctx, "wave", WithOptions(core.Options{
		CustomPreferred: map[string]core.EntityID{"wave": "🌊"},
	}))
	require.NoError(t, err)
	assert.Equal(t, ids("🌊", "👋"), results)
}

func TestSearchBestMatching_SingleWordStemFallback(t *testing.T) {
	searcher := newTestSearcher(t, core.DatasetSource{
		Entries: entries(
			"😊", []string{"smile"},
			"😄", []string{"grin"},
		),
	})
	ctx := context.Background()

	monitor := &testMonitor{}
	results, err := searcher.SearchBestMatching(ctx, "smiles", WithMonitor(monitor))
	require.NoError(t, err)
	assert.Equal(t, ids("😊"), results)
	assert.Equal(t, []string{"smile"}, monitor.fallbacks)

	// The plain search has no stem fallback.
	results, err = searcher.Search(ctx, "smiles")
	require.NoError(t, err)
	assert.Empty(t, results)

	// A word that matches needs no fallback.
	monitor = &testMonitor{}
	results, err = searcher.SearchBestMatching(ctx, "gr", WithMonitor(monitor))
	require.NoError(t, err)
	assert.Equal(t, ids("😄"), results)
	assert.Empty(t, monitor.fallbacks)
}

func TestSearchBestMatching_Phrase(t *testing.T) {
	searcher := newTestSearcher(t, core.DatasetSource{
		Entries: entries(
			"👶", []string{"cry baby", "facepalm"},
			"😿", []string{"crying cat"},
			"😢", []string{"crying face"},
		),
	})
	ctx := context.Background()

	monitor := &testMonitor{}
	results, err := searcher.SearchBestMatching(ctx, "The crying faces", WithMonitor(monitor))
	require.NoError(t, err)
	assert.Equal(t, ids("😢", "😿", "👶"), results)
	assert.Equal(t, []Matcher{MatcherBest}, monitor.selected)
	assert.Empty(t, monitor.fallbacks)

	// The raw phrase matcher is stricter.
	results, err = searcher.Search(ctx, "the crying faces")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchBestMatching_SameInputRetry(t *testing.T) {
	searcher := newTestSearcher(t, fixture())
	ctx := context.Background()

	monitor := &testMonitor{}
	results, err := searcher.SearchBestMatching(ctx, "zebra quartz", WithMonitor(monitor))
	require.NoError(t, err)
	assert.Empty(t, results)
	// The retry runs with unchanged inputs and cannot find anything new.
	assert.Equal(t, []string{"zebra quartz"}, monitor.fallbacks)

	// Only function words: nothing left to match.
	results, err = searcher.SearchBestMatching(ctx, "the of and")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_Closed(t *testing.T) {
	ds, err := core.NewDataset(fixture())
	require.NoError(t, err)
	searcher, err := NewSearcher(ds)
	require.NoError(t, err)

	searcher.Release()

	_, err = searcher.Search(context.Background(), "dog")
	assert.ErrorIs(t, err, ErrSearcherClosed)
	_, err = searcher.SearchBestMatching(context.Background(), "dog face")
	assert.ErrorIs(t, err, ErrSearcherClosed)
	_, err = searcher.MatchWord(context.Background(), "dog", core.Options{})
	assert.ErrorIs(t, err, ErrSearcherClosed)
}

func TestSearch_Cancelled(t *testing.T) {
	searcher := newTestSearcher(t, fixture())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := searcher.Search(ctx, "dog")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = searcher.MatchPhrase(ctx, "dog face", core.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchMonitor_FinishedOnError(t *testing.T) {
	ds, err := core.NewDataset(fixture())
	require.NoError(t, err)

	t.Run("closed searcher", func(t *testing.T) {
		searcher, err := NewSearcher(ds)
		require.NoError(t, err)
		searcher.Release()

		for _, run := range []func(context.Context, string, ...SearchOption) ([]core.EntityID, error){
			searcher.Search, searcher.SearchBestMatching,
		} {
			monitor := &testMonitor{}
			_, err := run(context.Background(), "dog", WithMonitor(monitor))
			assert.ErrorIs(t, err, ErrSearcherClosed)
			assert.True(t, monitor.startCalled)
			assert.True(t, monitor.finishCalled)
			assert.Nil(t, monitor.results)
		}
	})

	t.Run("context cancelled while matching", func(t *testing.T) {
		searcher := newTestSearcher(t, fixture())

		for _, query := range []string{"dog", "dog face"} {
			ctx, cancel := context.WithCancel(context.Background())
			monitor := &cancellingMonitor{cancel: cancel}
			_, err := searcher.SearchBestMatching(ctx, query, WithMonitor(monitor))
			assert.ErrorIs(t, err, context.Canceled, query)
			assert.NotEmpty(t, monitor.selected, query)
			assert.True(t, monitor.finishCalled, query)
		}
	})
}

// cancellingMonitor cancels the search as soon as a matcher is chosen.
type cancellingMonitor struct {
	testMonitor
	cancel context.CancelFunc
}

func (m *cancellingMonitor) MatcherSelected(matcher Matcher, input string) {
	m.testMonitor.MatcherSelected(matcher, input)
	m.cancel()
}

func TestSearch_Concurrent(t *testing.T) {
	src := core.DatasetSource{}
	for i := 0; i < 500; i++ {
		src.Entries = append(src.Entries, core.Entry{
			Entity:   core.EntityID(fmt.Sprintf("e%03d", i)),
			Keywords: []string{fmt.Sprintf("item %d", i), fmt.Sprintf("tag%d", i%7), "shared word"},
		})
	}
	searcher := newTestSearcher(t, src, WithPoolSize(2))
	ctx := context.Background()

	queries := []string{"tag3", "item 4", "shared", "word shared", "tag"}
	expected := make(map[string][]core.EntityID)
	for _, q := range queries {
		results, err := searcher.Search(ctx, q, WithLimit(1000))
		require.NoError(t, err)
		expected[q] = results
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, q := range queries {
				results, err := searcher.Search(ctx, q, WithLimit(1000))
				assert.NoError(t, err)
				assert.Equal(t, expected[q], results, q)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, expected["shared"], 500)
	assert.Len(t, expected["tag3"], 71)
}

// testMonitor records the hooks it receives.
type testMonitor struct {
	startCalled  bool
	finishCalled bool
	selected     []Matcher
	fallbacks    []string
	results      []core.EntityID
}

func (m *testMonitor) Start(query string) {
	m.startCalled = true
}

func (m *testMonitor) MatcherSelected(matcher Matcher, input string) {
	m.selected = append(m.selected, matcher)
}

func (m *testMonitor) FallbackTaken(matcher Matcher, input string) {
	m.fallbacks = append(m.fallbacks, input)
}

func (m *testMonitor) Finish(results []core.EntityID) {
	m.finishCalled = true
	m.results = results
}

func TestSearchWithMonitor(t *testing.T) {
	searcher := newTestSearcher(t, fixture())

	monitor := &testMonitor{}
	results, err := searcher.Search(context.Background(), "🐕", WithMonitor(monitor))
	require.NoError(t, err)

	assert.True(t, monitor.startCalled)
	assert.True(t, monitor.finishCalled)
	assert.Equal(t, []Matcher{MatcherEntity}, monitor.selected)
	assert.Equal(t, results, monitor.results)

	// nil monitor falls back to a no-op
	_, err = searcher.Search(context.Background(), "dog", WithMonitor(nil))
	require.NoError(t, err)
}
