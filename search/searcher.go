package search

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/panjf2000/ants/v2"
	"github.com/philocalyst/emoji-search/core"
	"github.com/philocalyst/emoji-search/nlp"
)

// DefaultLimit is the number of results returned when no limit is given.
const DefaultLimit = 24

// Searcher ranks the entities of a dataset against queries.
// It is safe for concurrent use.
type Searcher struct {
	dataset *core.Dataset
	index   *index
	pool    *ants.Pool
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size used to score entries.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		// Release old pool
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// NewSearcher creates a new searcher over ds. The keyword index is built
// before NewSearcher returns.
func NewSearcher(ds *core.Dataset, opts ...Option) (*Searcher, error) {
	if ds == nil {
		return nil, ErrDatasetRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		dataset: ds,
		pool:    pool,
		logger:  slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	s.index = buildIndex(ds)
	s.logger.Debug("search index built", "entities", len(s.index.entries), "poolSize", s.pool.Cap())
	return s, nil
}

// Release releases the worker pool.
// The searcher returns ErrSearcherClosed after calling Release.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Dataset returns the dataset being searched.
func (s *Searcher) Dataset() *core.Dataset {
	return s.dataset
}

type searchConfig struct {
	limit   int
	options core.Options
	monitor SearchMonitor
}

// SearchOption configures a single search call.
type SearchOption func(*searchConfig)

// WithLimit caps the number of results. Negative limits are treated as zero.
// Default is DefaultLimit.
func WithLimit(limit int) SearchOption {
	return func(c *searchConfig) {
		c.limit = max(limit, 0)
	}
}

// WithOptions sets the personalization options for the call.
func WithOptions(options core.Options) SearchOption {
	return func(c *searchConfig) {
		c.options = options
	}
}

// WithMonitor sets a monitor that observes the call.
func WithMonitor(monitor SearchMonitor) SearchOption {
	return func(c *searchConfig) {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		c.monitor = monitor
	}
}

func newSearchConfig(opts []SearchOption) *searchConfig {
	c := &searchConfig{limit: DefaultLimit, monitor: &noopMonitor{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search finds the entities that best match query, optimized for
// search-as-you-type. A query that is itself a known entity returns just
// that entity. A single word goes through the word matcher, anything with a
// space through the phrase matcher.
func (s *Searcher) Search(ctx context.Context, query string, opts ...SearchOption) ([]core.EntityID, error) {
	cfg := newSearchConfig(opts)
	cfg.monitor.Start(query)

	input, err := s.prepare(ctx, query)
	if err != nil {
		return nil, s.abort(cfg, err)
	}
	if input == "" {
		return s.finish(cfg, nil), nil
	}

	if s.dataset.Contains(core.EntityID(input)) {
		s.selected(cfg, MatcherEntity, input)
		results := []core.EntityID{core.EntityID(input)}
		cfg.monitor.Finish(results)
		return results, nil
	}

	var results []core.EntityID
	if !strings.Contains(input, " ") {
		s.selected(cfg, MatcherWord, input)
		results, err = s.MatchWord(ctx, input, cfg.options)
	} else {
		s.selected(cfg, MatcherPhrase, input)
		results, err = s.MatchPhrase(ctx, input, cfg.options)
	}
	if err != nil {
		s.logger.Error("error matching query", "query", input, "err", err)
		return nil, s.abort(cfg, err)
	}
	return s.finish(cfg, results), nil
}

// SearchBestMatching is a more forgiving search. A single word that matches
// nothing is retried with its stem. A phrase is stripped of function words
// and stemmed before matching.
func (s *Searcher) SearchBestMatching(ctx context.Context, query string, opts ...SearchOption) ([]core.EntityID, error) {
	cfg := newSearchConfig(opts)
	cfg.monitor.Start(query)

	input, err := s.prepare(ctx, query)
	if err != nil {
		return nil, s.abort(cfg, err)
	}
	if input == "" {
		return s.finish(cfg, nil), nil
	}

	var results []core.EntityID
	if !strings.Contains(input, " ") {
		s.selected(cfg, MatcherWord, input)
		results, err = s.MatchWord(ctx, input, cfg.options)
		if err == nil && len(results) == 0 {
			if stem := nlp.Stem(input); stem != input {
				s.fallback(cfg, MatcherWord, stem)
				results, err = s.MatchWord(ctx, stem, cfg.options)
			}
		}
	} else {
		words := nlp.FilterPartsOfSpeech(strings.Split(input, " "))
		stems := make([]string, len(words))
		for i, w := range words {
			stems[i] = nlp.Stem(w)
		}

		s.selected(cfg, MatcherBest, input)
		results, err = s.MatchBest(ctx, words, stems, cfg.options)
		if err == nil && len(results) == 0 {
			// Same inputs, so this cannot find anything new.
			s.fallback(cfg, MatcherBest, input)
			results, err = s.MatchBest(ctx, words, stems, cfg.options)
		}
	}
	if err != nil {
		s.logger.Error("error matching query", "query", input, "err", err)
		return nil, s.abort(cfg, err)
	}
	return s.finish(cfg, results), nil
}

// MatchWord ranks every entity whose keywords contain word, or a word
// starting with it. word must already be normalized.
func (s *Searcher) MatchWord(ctx context.Context, word string, options core.Options) ([]core.EntityID, error) {
	scorer := &wordScorer{idx: s.index, req: newRequest(options), input: word}
	return rank(ctx, s.pool, s.index.entries, scorer.score, wordRanking)
}

// MatchPhrase ranks entities against a normalized multi-word phrase, split
// on single spaces and neither filtered nor stemmed.
func (s *Searcher) MatchPhrase(ctx context.Context, phrase string, options core.Options) ([]core.EntityID, error) {
	scorer := &phraseScorer{req: newRequest(options), phrase: phrase, words: strings.Split(phrase, " ")}
	return rank(ctx, s.pool, s.index.entries, scorer.score, phraseRanking)
}

// MatchBest ranks entities against filtered words and their stems.
// stems[i] is the stem of words[i]; a missing stem is taken to be the word.
func (s *Searcher) MatchBest(ctx context.Context, words, stems []string, options core.Options) ([]core.EntityID, error) {
	full := make([]string, len(words))
	for i, w := range words {
		full[i] = w
		if i < len(stems) {
			full[i] = stems[i]
		}
	}
	scorer := &bestScorer{req: newRequest(options), words: words, stems: full}
	return rank(ctx, s.pool, s.index.entries, scorer.score, bestRanking)
}

// prepare normalizes and trims query after checking the searcher can run.
func (s *Searcher) prepare(ctx context.Context, query string) (string, error) {
	if s.pool == nil || s.pool.IsClosed() {
		return "", ErrSearcherClosed
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(nlp.Normalize(query)), nil
}

func (s *Searcher) selected(cfg *searchConfig, matcher Matcher, input string) {
	s.logger.Debug("matcher selected", "matcher", matcher, "input", input)
	cfg.monitor.MatcherSelected(matcher, input)
}

func (s *Searcher) fallback(cfg *searchConfig, matcher Matcher, input string) {
	s.logger.Debug("no results, falling back", "matcher", matcher, "input", input)
	cfg.monitor.FallbackTaken(matcher, input)
}

// abort reports a failed call to the monitor and returns err.
func (s *Searcher) abort(cfg *searchConfig, err error) error {
	cfg.monitor.Finish(nil)
	return err
}

// finish truncates results to the configured limit and reports them.
func (s *Searcher) finish(cfg *searchConfig, results []core.EntityID) []core.EntityID {
	if results == nil {
		results = []core.EntityID{}
	}
	if len(results) > cfg.limit {
		results = results[:cfg.limit]
	}
	cfg.monitor.Finish(results)
	return results
}
