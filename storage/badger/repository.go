package badger

import (
	"context"

	"github.com/philocalyst/emoji-search/storage"
)

// DatasetRepository implements storage.DatasetRepository on a single backend.
type DatasetRepository struct {
	*EmojiRepository
	*LexiconRepository
	*InfoRepository
	backend *Backend
}

var _ storage.DatasetRepository = (*DatasetRepository)(nil)

// NewDatasetRepository creates a DatasetRepository over backend.
// The backend stays owned by the caller.
func NewDatasetRepository(backend *Backend) *DatasetRepository {
	return &DatasetRepository{
		EmojiRepository:   NewEmojiRepository(backend),
		LexiconRepository: NewLexiconRepository(backend),
		InfoRepository:    NewInfoRepository(backend),
		backend:           backend,
	}
}

// Close releases the repositories. It does not close the backend.
func (r *DatasetRepository) Close() error {
	if err := r.EmojiRepository.Close(); err != nil {
		return err
	}
	return r.LexiconRepository.Close()
}

// WithTransaction delegates to the backend.
func (r *DatasetRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Clear removes every stored dataset record, including the dataset marker.
func (r *DatasetRepository) Clear(ctx context.Context) error {
	return r.backend.DropPrefixes(datasetPrefixes...)
}
