package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/philocalyst/emoji-search/core"
	"github.com/philocalyst/emoji-search/storage"
)

// File names of the emoji distribution.
const (
	KeywordsFile  = "emoogle-emoji-keywords.json"
	PreferredFile = "emoogle-keyword-most-relevant-emoji.json"
	GlossaryFile  = "emoogle-emoji-glossary.json"
	TopWordsFile  = "top-1000-words-by-frequency.json"
)

// Sources holds the readers of the four dataset tables.
// Glossary may be nil.
type Sources struct {
	Keywords  io.Reader // {"emoji": ["canonical name", "keyword", ...], ...}
	Preferred io.Reader // {"keyword": "emoji", ...}
	Glossary  io.Reader // {"keyword": ["emoji", ...], ...}
	TopWords  io.Reader // ["the", "of", ...]
}

type loadConfig struct {
	logger *slog.Logger
}

// LoadOption configures ReadJSON and LoadDir.
type LoadOption func(*loadConfig)

// WithLoadLogger sets the logger that reports dropped table rows.
// Default is slog.Default().
func WithLoadLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newLoadConfig(opts []LoadOption) *loadConfig {
	c := &loadConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadJSON parses the dataset tables. Entries keep the order of the keywords
// file. Preferences that name an emoji absent from the keywords file are
// dropped with a warning.
func ReadJSON(src Sources, opts ...LoadOption) (*core.Dataset, error) {
	cfg := newLoadConfig(opts)
	if src.Keywords == nil || src.Preferred == nil || src.TopWords == nil {
		return nil, fmt.Errorf("%w: keywords, preferred and top words are required", ErrDataLoad)
	}

	var ds core.DatasetSource
	err := decodeObject(src.Keywords, func(key string, dec *json.Decoder) error {
		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return err
		}
		ds.Entries = append(ds.Entries, core.Entry{Entity: core.EntityID(key), Keywords: keywords})
		return nil
	})
	if err != nil {
		return nil, loadError(KeywordsFile, err)
	}

	known := make(map[core.EntityID]struct{}, len(ds.Entries))
	for _, e := range ds.Entries {
		known[e.Entity] = struct{}{}
	}

	ds.Preferred = make(map[string]core.EntityID)
	dropped := 0
	err = decodeObject(src.Preferred, func(key string, dec *json.Decoder) error {
		var entity core.EntityID
		if err := dec.Decode(&entity); err != nil {
			return err
		}
		if _, ok := known[entity]; !ok {
			dropped++
			return nil
		}
		ds.Preferred[key] = entity
		return nil
	})
	if err != nil {
		return nil, loadError(PreferredFile, err)
	}
	if dropped > 0 {
		cfg.logger.Warn("dropped preferences for unknown emojis", "count", dropped)
	}

	if src.Glossary != nil {
		ds.Glossary = make(map[string][]core.EntityID)
		err = decodeObject(src.Glossary, func(key string, dec *json.Decoder) error {
			var entities []core.EntityID
			if err := dec.Decode(&entities); err != nil {
				return err
			}
			ds.Glossary[key] = entities
			return nil
		})
		if err != nil {
			return nil, loadError(GlossaryFile, err)
		}
	}

	if err := json.NewDecoder(src.TopWords).Decode(&ds.TopWords); err != nil {
		return nil, loadError(TopWordsFile, err)
	}

	dataset, err := core.NewDataset(ds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	return dataset, nil
}

// LoadDir reads the dataset files from dir. The glossary file is optional.
func LoadDir(dir string, opts ...LoadOption) (*core.Dataset, error) {
	open := func(name string, optional bool) (*os.File, error) {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			if optional && errors.Is(err, os.ErrNotExist) {
				return nil, nil
			}
			return nil, loadError(name, err)
		}
		return f, nil
	}

	var files []*os.File
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	var src Sources
	for _, table := range []struct {
		name     string
		optional bool
		dst      *io.Reader
	}{
		{KeywordsFile, false, &src.Keywords},
		{PreferredFile, false, &src.Preferred},
		{GlossaryFile, true, &src.Glossary},
		{TopWordsFile, false, &src.TopWords},
	} {
		f, err := open(table.name, table.optional)
		if err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}
		files = append(files, f)
		*table.dst = f
	}

	return ReadJSON(src, opts...)
}

// Load rebuilds the dataset held by repo. It fails with ErrNoDataset when
// nothing was imported, and when the stored tables no longer match the
// checksum recorded at import time.
func Load(ctx context.Context, repo storage.DatasetRepository) (*core.Dataset, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	info, err := repo.LoadInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	if info == nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, ErrNoDataset)
	}

	records, err := repo.GetAllEmojis(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	var src core.DatasetSource
	src.Entries = make([]core.Entry, len(records))
	for i, record := range records {
		src.Entries[i] = record.Entry()
	}

	if src.Preferred, err = repo.GetPreferences(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	if src.TopWords, err = repo.GetTopWords(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	if src.Glossary, err = repo.GetGlossary(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}

	ds, err := core.NewDataset(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	if sum := ds.Checksum(); sum != info.Checksum {
		return nil, fmt.Errorf("%w: stored dataset checksum %d does not match %d", ErrDataLoad, sum, info.Checksum)
	}
	return ds, nil
}

// decodeObject walks a JSON object in document order, calling fn with each
// key while the decoder sits on its value. fn must consume the value.
func decodeObject(r io.Reader, fn func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key, dec); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func loadError(file string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDataLoad, file, err)
}
