package storage

import (
	"context"

	"github.com/philocalyst/emoji-search/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// EmojiRepository stores the emoji records of a dataset.
type EmojiRepository interface {
	Repository

	// PutEmojis stores records, replacing any record with the same symbol.
	// Records with Id=0 get a content ID derived from their symbol.
	PutEmojis(ctx context.Context, records ...*core.EmojiRecord) ([]*core.EmojiRecord, error)

	// DeleteEmojis removes records by ID along with their symbol index.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteEmojis(ctx context.Context, ids ...core.ID) error

	// GetEmoji retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetEmoji(ctx context.Context, id core.ID) (*core.EmojiRecord, error)

	// FindEmojiBySymbol retrieves a record by its symbol.
	// Returns ErrNotFound if no record carries the symbol.
	FindEmojiBySymbol(ctx context.Context, symbol string) (*core.EmojiRecord, error)

	// GetAllEmojis retrieves every record ordered by Position.
	GetAllEmojis(ctx context.Context) ([]*core.EmojiRecord, error)
}

// LexiconRepository stores the keyword tables that accompany the emoji records.
type LexiconRepository interface {
	Repository

	// PutPreferences replaces the keyword → preferred emoji table.
	PutPreferences(ctx context.Context, preferences map[string]core.EntityID) error

	// GetPreferences returns the keyword → preferred emoji table.
	GetPreferences(ctx context.Context) (map[string]core.EntityID, error)

	// PutTopWords replaces the ranked word list. Index 0 is the most common word.
	PutTopWords(ctx context.Context, words []string) error

	// GetTopWords returns the ranked word list, most common first.
	GetTopWords(ctx context.Context) ([]string, error)

	// PutGlossary replaces the keyword → emojis glossary.
	PutGlossary(ctx context.Context, glossary map[string][]core.EntityID) error

	// GetGlossary returns the keyword → emojis glossary.
	GetGlossary(ctx context.Context) (map[string][]core.EntityID, error)
}

// InfoRepository stores the marker describing the imported dataset.
type InfoRepository interface {
	// SaveInfo persists the dataset marker.
	SaveInfo(ctx context.Context, info *core.DatasetInfo) error

	// LoadInfo retrieves the dataset marker.
	// Returns nil, nil if no dataset was imported.
	LoadInfo(ctx context.Context) (*core.DatasetInfo, error)
}

// DatasetRepository combines everything needed to persist and restore a dataset.
type DatasetRepository interface {
	EmojiRepository
	LexiconRepository
	InfoRepository

	// Clear removes every stored dataset record.
	Clear(ctx context.Context) error
}
