package badger

import (
	"context"
	"errors"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/philocalyst/emoji-search/core"
	"github.com/philocalyst/emoji-search/storage"
)

// EmojiRepository implements storage.EmojiRepository for BadgerDB.
type EmojiRepository struct {
	backend *Backend
}

var _ storage.EmojiRepository = (*EmojiRepository)(nil)

// NewEmojiRepository creates a new EmojiRepository.
func NewEmojiRepository(backend *Backend) *EmojiRepository {
	return &EmojiRepository{
		backend: backend,
	}
}

// Close releases resources. EmojiRepository has no resources to release.
func (r *EmojiRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *EmojiRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutEmojis stores one or more emoji records.
func (r *EmojiRepository) PutEmojis(ctx context.Context, records ...*core.EmojiRecord) ([]*core.EmojiRecord, error) {
	for _, record := range records {
		if err := core.ValidateEmojiRecord(record); err != nil {
			return nil, errors.Join(storage.ErrInvalidRecord, err)
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			// Use content-based ID if not set
			if record.Id == 0 {
				record.Id = core.IDFromContent(record.Symbol)
			}

			key := makeEmojiKey(record.Id)
			if err := tx.Set(key, storage.MarshalEmojiRecord(record)); err != nil {
				return err
			}

			symbolKey := makeEmojiSymbolKey(record.Symbol)
			if err := tx.Set(symbolKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// DeleteEmojis removes emoji records by their IDs.
func (r *EmojiRepository) DeleteEmojis(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEmojiKey(id)

			record, err := readEmoji(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeEmojiSymbolKey(record.Symbol)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEmoji retrieves a single emoji record by ID.
func (r *EmojiRepository) GetEmoji(ctx context.Context, id core.ID) (*core.EmojiRecord, error) {
	var result *core.EmojiRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readEmoji(tx, makeEmojiKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// FindEmojiBySymbol finds an emoji record by its symbol.
func (r *EmojiRepository) FindEmojiBySymbol(ctx context.Context, symbol string) (*core.EmojiRecord, error) {
	var result *core.EmojiRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Look up ID from symbol index
		item, err := tx.Get(makeEmojiSymbolKey(symbol))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		err = item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readEmoji(tx, makeEmojiKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetAllEmojis retrieves every emoji record ordered by position.
func (r *EmojiRepository) GetAllEmojis(ctx context.Context) ([]*core.EmojiRecord, error) {
	var results []*core.EmojiRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(tx, prefixBytes(emojiRecordPrefix), func(_, val []byte) error {
			record, err := storage.UnmarshalEmojiRecord(val)
			if err != nil {
				return err
			}
			results = append(results, record)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	// Keys are ordered by ID, not by dataset position.
	slices.SortFunc(results, func(a, b *core.EmojiRecord) int {
		return a.Position - b.Position
	})
	return results, nil
}

// readEmoji reads an emoji record from the transaction.
// Returns nil, nil when the key is absent.
func readEmoji(tx *badger.Txn, key []byte) (*core.EmojiRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.EmojiRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalEmojiRecord(val)
		return err
	})
	return record, err
}
