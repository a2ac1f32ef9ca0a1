// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package emojisearch

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/philocalyst/emoji-search/core"
	"github.com/philocalyst/emoji-search/dataset"
	"github.com/philocalyst/emoji-search/nlp"
	"github.com/philocalyst/emoji-search/search"
	"github.com/philocalyst/emoji-search/storage/badger"
)

// Engine ties a dataset store to a searcher over the dataset it holds.
// It is safe for concurrent use; Import may run while searches are in flight.
type Engine struct {
	backend *badger.Backend
	repo    *badger.DatasetRepository
	options *engineOptions
	logger  *slog.Logger

	mu      sync.RWMutex
	closed  bool
	dataset *core.Dataset
	info    *core.DatasetInfo
	active  *generation
}

// generation is a searcher together with the calls still running on it.
// A replaced generation is released once those calls return.
type generation struct {
	searcher *search.Searcher
	inflight sync.WaitGroup
}

func (g *generation) retire() {
	g.inflight.Wait()
	g.searcher.Release()
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	logger   *slog.Logger
	poolSize int
	inMemory bool
}

// WithLogger sets a custom logger for the engine, its store and its searcher.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPoolSize sets the searcher's worker pool size. Zero keeps the
// searcher's default.
func WithPoolSize(size int) Option {
	return func(o *engineOptions) {
		o.poolSize = size
	}
}

// WithInMemory keeps the store in memory. The path given to Open is ignored.
func WithInMemory() Option {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

func newEngineOptions(opts []Option) *engineOptions {
	options := &engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (o *engineOptions) searchOptions() []search.Option {
	opts := []search.Option{search.WithLogger(o.logger)}
	if o.poolSize > 0 {
		opts = append(opts, search.WithPoolSize(o.poolSize))
	}
	return opts
}

// Open opens the dataset store at path and loads the dataset it holds.
// An empty store opens fine; searches fail with dataset.ErrNoDataset until
// Import is called.
func Open(path string, opts ...Option) (*Engine, error) {
	options := newEngineOptions(opts)

	backend, err := badger.OpenBackend(path, options.inMemory, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	repo := badger.NewDatasetRepository(backend)

	e := &Engine{
		backend: backend,
		repo:    repo,
		options: options,
		logger:  options.logger,
	}

	ds, err := dataset.Load(context.Background(), repo)
	switch {
	case errors.Is(err, dataset.ErrNoDataset):
		e.logger.Info("dataset store is empty", "path", path)
		return e, nil
	case err != nil:
		e.Close()
		return nil, err
	}

	info, err := repo.LoadInfo(context.Background())
	if err != nil {
		e.Close()
		return nil, err
	}
	if err := e.swap(ds, info); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// New creates an engine over an in-memory dataset with no store behind it.
// Import fails with ErrNoStore on such an engine.
func New(ds *core.Dataset, opts ...Option) (*Engine, error) {
	if ds == nil {
		return nil, search.ErrDatasetRequired
	}
	options := newEngineOptions(opts)
	e := &Engine{options: options, logger: options.logger}
	if err := e.swap(ds, nil); err != nil {
		return nil, err
	}
	return e, nil
}

// Close waits for running searches, releases the searcher and closes the
// store. Later searches fail with search.ErrSearcherClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	e.closed = true
	old := e.active
	e.mu.Unlock()

	if old != nil {
		old.retire()
	}

	if e.backend == nil {
		return nil
	}
	if err := e.repo.Close(); err != nil {
		e.logger.Error("error closing dataset repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Search runs search.Searcher.Search against the current dataset.
func (e *Engine) Search(ctx context.Context, query string, opts ...search.SearchOption) ([]core.EntityID, error) {
	g, err := e.acquire()
	if err != nil {
		return nil, err
	}
	defer g.inflight.Done()
	return g.searcher.Search(ctx, query, opts...)
}

// SearchBestMatching runs search.Searcher.SearchBestMatching against the
// current dataset.
func (e *Engine) SearchBestMatching(ctx context.Context, query string, opts ...search.SearchOption) ([]core.EntityID, error) {
	g, err := e.acquire()
	if err != nil {
		return nil, err
	}
	defer g.inflight.Done()
	return g.searcher.SearchBestMatching(ctx, query, opts...)
}

// Lookup returns the glossary emojis listed under keyword.
func (e *Engine) Lookup(keyword string) ([]core.EntityID, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.dataset == nil {
		return nil, dataset.ErrNoDataset
	}
	return e.dataset.Glossary(strings.TrimSpace(nlp.Normalize(keyword))), nil
}

// Dataset returns the dataset being searched, or nil for an empty store.
func (e *Engine) Dataset() *core.Dataset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dataset
}

// Info returns the marker of the stored dataset, or nil when the engine has
// no store or the store is empty.
func (e *Engine) Info() *core.DatasetInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.info
}

// Import writes ds into the store and switches searches over to it.
// imported is false when the store already held ds; see dataset.Importer.
func (e *Engine) Import(ctx context.Context, ds *core.Dataset, opts ...dataset.Option) (imported bool, err error) {
	if e.repo == nil {
		return false, ErrNoStore
	}

	opts = append([]dataset.Option{dataset.WithLogger(e.logger)}, opts...)
	importer, err := dataset.NewImporter(e.repo, opts...)
	if err != nil {
		return false, err
	}
	defer importer.Release()

	info, imported, err := importer.Import(ctx, ds)
	if err != nil {
		return false, err
	}
	if err := e.swap(ds, info); err != nil {
		return false, err
	}
	return imported, nil
}

// swap builds a searcher over ds and makes it current. Searches already
// running on the previous searcher finish on it before it is released.
func (e *Engine) swap(ds *core.Dataset, info *core.DatasetInfo) error {
	s, err := search.NewSearcher(ds, e.options.searchOptions()...)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		s.Release()
		return search.ErrSearcherClosed
	}
	old := e.active
	e.dataset, e.info, e.active = ds, info, &generation{searcher: s}
	e.mu.Unlock()

	if old != nil {
		old.retire()
	}
	return nil
}

// acquire returns the current generation with one more call in flight.
// The caller must call inflight.Done when the call returns.
func (e *Engine) acquire() (*generation, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, search.ErrSearcherClosed
	}
	if e.active == nil {
		return nil, dataset.ErrNoDataset
	}
	e.active.inflight.Add(1)
	return e.active, nil
}
