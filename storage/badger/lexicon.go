package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/philocalyst/emoji-search/core"
	"github.com/philocalyst/emoji-search/storage"
)

// LexiconRepository implements storage.LexiconRepository for BadgerDB.
// Each Put replaces the whole table it writes.
type LexiconRepository struct {
	backend *Backend
}

var _ storage.LexiconRepository = (*LexiconRepository)(nil)

// NewLexiconRepository creates a new LexiconRepository.
func NewLexiconRepository(backend *Backend) *LexiconRepository {
	return &LexiconRepository{
		backend: backend,
	}
}

// Close releases resources. LexiconRepository has no resources to release.
func (r *LexiconRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *LexiconRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutPreferences replaces the keyword preference table.
func (r *LexiconRepository) PutPreferences(ctx context.Context, preferences map[string]core.EntityID) error {
	if err := r.backend.DropPrefixes(preferencePrefix); err != nil {
		return err
	}
	return r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for keyword, entity := range preferences {
			if err := wb.Set(makePreferenceKey(keyword), storage.MarshalString(string(entity))); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetPreferences returns the keyword preference table.
func (r *LexiconRepository) GetPreferences(ctx context.Context) (map[string]core.EntityID, error) {
	preferences := make(map[string]core.EntityID)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(tx, prefixBytes(preferencePrefix), func(key, val []byte) error {
			symbol, err := storage.UnmarshalString(val)
			if err != nil {
				return err
			}
			preferences[keySuffix(key, preferencePrefix)] = core.EntityID(symbol)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return preferences, nil
}

// PutTopWords replaces the ranked word list.
func (r *LexiconRepository) PutTopWords(ctx context.Context, words []string) error {
	if err := r.backend.DropPrefixes(wordRankPrefix); err != nil {
		return err
	}
	return r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for rank, word := range words {
			if err := wb.Set(makeWordRankKey(rank), storage.MarshalString(word)); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetTopWords returns the ranked word list, most common first.
func (r *LexiconRepository) GetTopWords(ctx context.Context) ([]string, error) {
	var words []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Rank keys are BigEndian, so iteration order is rank order.
		return scanPrefix(tx, prefixBytes(wordRankPrefix), func(_, val []byte) error {
			word, err := storage.UnmarshalString(val)
			if err != nil {
				return err
			}
			words = append(words, word)
			return nil
		})
	}, false)
	return words, err
}

// PutGlossary replaces the glossary.
func (r *LexiconRepository) PutGlossary(ctx context.Context, glossary map[string][]core.EntityID) error {
	if err := r.backend.DropPrefixes(glossaryPrefix); err != nil {
		return err
	}
	return r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for keyword, entities := range glossary {
			if err := wb.Set(makeGlossaryKey(keyword), storage.MarshalEntities(entities)); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetGlossary returns the glossary.
func (r *LexiconRepository) GetGlossary(ctx context.Context) (map[string][]core.EntityID, error) {
	glossary := make(map[string][]core.EntityID)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(tx, prefixBytes(glossaryPrefix), func(key, val []byte) error {
			entities, err := storage.UnmarshalEntities(val)
			if err != nil {
				return err
			}
			glossary[keySuffix(key, glossaryPrefix)] = entities
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return glossary, nil
}
