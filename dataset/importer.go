package dataset

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/philocalyst/emoji-search/core"
	"github.com/philocalyst/emoji-search/storage"
)

const (
	defaultBatchSize   = 256
	defaultMaxAttempts = 3
	defaultBaseDelay   = 50 * time.Millisecond
)

// Importer writes datasets into a repository.
type Importer struct {
	repository  storage.DatasetRepository
	pool        *ants.Pool
	batchSize   int
	maxAttempts int
	baseDelay   time.Duration
	progress    io.Writer
	force       bool
	logger      *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithPoolSize sets the number of batches written concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(im *Importer) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		// Release old pool
		if im.pool != nil {
			im.pool.Release()
		}
		im.pool = pool
		return nil
	}
}

// WithBatchSize sets the number of emoji records per write transaction.
// Default is 256.
func WithBatchSize(size int) Option {
	return func(im *Importer) error {
		im.batchSize = max(size, 1)
		return nil
	}
}

// WithRetry sets how often a failed batch is retried and the delay before
// the first retry. Default is 3 attempts starting at 50ms.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(im *Importer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		im.maxAttempts = maxAttempts
		im.baseDelay = baseDelay
		return nil
	}
}

// WithProgress reports import progress to w.
func WithProgress(w io.Writer) Option {
	return func(im *Importer) error {
		im.progress = w
		return nil
	}
}

// WithForce makes Import rewrite a dataset the store already holds.
func WithForce(force bool) Option {
	return func(im *Importer) error {
		im.force = force
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
		return nil
	}
}

// NewImporter creates an importer writing into repository.
func NewImporter(repository storage.DatasetRepository, opts ...Option) (*Importer, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
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

	im := &Importer{
		repository:  repository,
		pool:        pool,
		batchSize:   defaultBatchSize,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(im); optErr != nil {
			im.Release()
			return nil, optErr
		}
	}

	return im, nil
}

// Release releases the worker pool.
// The importer should not be used after calling Release.
func (im *Importer) Release() {
	if im.pool != nil {
		im.pool.Release()
	}
}

// Import stores ds, replacing whatever dataset the repository held.
// When the stored dataset already has the same checksum and force is off,
// nothing is written and imported is false. The dataset marker is written
// last, so an interrupted import is never mistaken for a complete one.
func (im *Importer) Import(ctx context.Context, ds *core.Dataset) (info *core.DatasetInfo, imported bool, err error) {
	if ds == nil {
		return nil, false, ErrDatasetRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	checksum := ds.Checksum()

	current, err := im.repository.LoadInfo(ctx)
	if err != nil {
		return nil, false, err
	}
	if current != nil && current.Checksum == checksum && !im.force {
		im.logger.Info("dataset already imported", "checksum", checksum, "importedAt", current.ImportedAt)
		return current, false, nil
	}

	start := time.Now()
	if err := im.repository.Clear(ctx); err != nil {
		return nil, false, err
	}

	if err := im.putEmojis(ctx, ds.Entries()); err != nil {
		return nil, false, err
	}

	if err := im.retry(ctx, func() error { return im.repository.PutPreferences(ctx, ds.Preferences()) }); err != nil {
		return nil, false, err
	}
	if err := im.retry(ctx, func() error { return im.repository.PutTopWords(ctx, ds.TopWords()) }); err != nil {
		return nil, false, err
	}
	if err := im.retry(ctx, func() error { return im.repository.PutGlossary(ctx, ds.GlossaryEntries()) }); err != nil {
		return nil, false, err
	}

	info = &core.DatasetInfo{
		Checksum: checksum,
		Emojis:   ds.Len(),
		Keywords: ds.KeywordCount(),
	}
	if err := im.repository.SaveInfo(ctx, info); err != nil {
		return nil, false, err
	}

	im.logger.Info("dataset imported",
		"emojis", info.Emojis, "keywords", info.Keywords, "checksum", checksum, "elapsed", time.Since(start))
	return info, true, nil
}

// putEmojis writes the entries in batches on the worker pool.
func (im *Importer) putEmojis(ctx context.Context, entries []core.Entry) error {
	var tracker *ProgressTracker
	if im.progress != nil {
		tracker = NewProgressTracker(im.progress, len(entries), im.batchSize)
		tracker.Start()
		defer tracker.Finish()
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for lo := 0; lo < len(entries); lo += im.batchSize {
		hi := min(lo+im.batchSize, len(entries))
		batch := make([]*core.EmojiRecord, 0, hi-lo)
		for pos := lo; pos < hi; pos++ {
			batch = append(batch, core.RecordFromEntry(entries[pos], pos))
		}

		wg.Add(1)
		err := im.pool.Submit(func() {
			defer wg.Done()
			err := im.retry(ctx, func() error {
				_, err := im.repository.PutEmojis(ctx, batch...)
				return err
			})
			if err != nil {
				im.logger.Error("error writing emoji batch", "from", lo, "to", hi, "err", err)
				fail(err)
				return
			}
			if tracker != nil {
				tracker.Increment(len(batch))
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (im *Importer) retry(ctx context.Context, operation func() error) error {
	return RetryWithBackoff(ctx, operation, im.maxAttempts, im.baseDelay)
}
