package core

import (
	"encoding/binary"
	"fmt"
	"maps"
	"slices"

	"github.com/go-crypt/x/blake2b"
)

// DatasetSource holds the raw tables a loader produces.
type DatasetSource struct {
	// Entries in dataset order. Entry order is the final tie-break of every ranking.
	Entries []Entry

	// Preferred maps a normalized keyword to its most representative emoji.
	Preferred map[string]EntityID

	// TopWords lists common English words, most frequent first.
	TopWords []string

	// Glossary maps a keyword to the emojis carrying it. Optional.
	Glossary map[string][]EntityID
}

// Dataset is the immutable emoji vocabulary searched by the engine.
// A Dataset is safe for concurrent use; none of its methods mutate it and
// callers must not modify the slices it returns.
type Dataset struct {
	entries   []Entry
	positions map[EntityID]int
	preferred map[string]EntityID
	topWords  []string
	wordRanks map[string]int
	glossary  map[string][]EntityID
}

// NewDataset validates src and builds a Dataset from it.
// Every entry needs a symbol and a canonical name, symbols must be unique and
// every preferred emoji must be one of the entries.
func NewDataset(src DatasetSource) (*Dataset, error) {
	ds := &Dataset{
		entries:   make([]Entry, 0, len(src.Entries)),
		positions: make(map[EntityID]int, len(src.Entries)),
		preferred: maps.Clone(src.Preferred),
		topWords:  slices.Clone(src.TopWords),
		wordRanks: make(map[string]int, len(src.TopWords)),
		glossary:  maps.Clone(src.Glossary),
	}
	if ds.preferred == nil {
		ds.preferred = map[string]EntityID{}
	}
	if ds.glossary == nil {
		ds.glossary = map[string][]EntityID{}
	}

	for _, e := range src.Entries {
		if err := ValidateEntry(e); err != nil {
			return nil, err
		}
		if _, dup := ds.positions[e.Entity]; dup {
			return nil, fmt.Errorf("%w: %w: %q", ErrInvalidDataset, ErrDuplicateEntity, e.Entity)
		}
		ds.positions[e.Entity] = len(ds.entries)
		ds.entries = append(ds.entries, Entry{Entity: e.Entity, Keywords: slices.Clone(e.Keywords)})
	}

	for keyword, entity := range ds.preferred {
		if !ds.Contains(entity) {
			return nil, fmt.Errorf("%w: %w: %q preferred for %q", ErrInvalidDataset, ErrUnknownEntity, entity, keyword)
		}
	}

	// First occurrence wins so a repeated word keeps its best rank.
	for rank, word := range ds.topWords {
		if _, seen := ds.wordRanks[word]; !seen {
			ds.wordRanks[word] = rank
		}
	}

	return ds, nil
}

// Len returns the number of entries.
func (ds *Dataset) Len() int {
	return len(ds.entries)
}

// Entries returns all entries in dataset order.
func (ds *Dataset) Entries() []Entry {
	return ds.entries
}

// Contains reports whether id is a known entity.
func (ds *Dataset) Contains(id EntityID) bool {
	_, ok := ds.positions[id]
	return ok
}

// Entry returns the entry for id.
func (ds *Dataset) Entry(id EntityID) (Entry, bool) {
	pos, ok := ds.positions[id]
	if !ok {
		return Entry{}, false
	}
	return ds.entries[pos], true
}

// Preferences returns a copy of the keyword preference table.
func (ds *Dataset) Preferences() map[string]EntityID {
	return maps.Clone(ds.preferred)
}

// WordRank returns the frequency rank of word, lower being more common.
func (ds *Dataset) WordRank(word string) (int, bool) {
	rank, ok := ds.wordRanks[word]
	return rank, ok
}

// TopWords returns the ranked word list.
func (ds *Dataset) TopWords() []string {
	return ds.topWords
}

// Glossary returns the emojis listed under keyword.
func (ds *Dataset) Glossary(keyword string) []EntityID {
	return ds.glossary[keyword]
}

// GlossaryEntries returns a copy of the whole glossary.
func (ds *Dataset) GlossaryEntries() map[string][]EntityID {
	return maps.Clone(ds.glossary)
}

// KeywordCount returns the total number of built-in keywords.
func (ds *Dataset) KeywordCount() int {
	n := 0
	for _, e := range ds.entries {
		n += len(e.Keywords)
	}
	return n
}

// Checksum hashes the dataset content. Two datasets with the same entries in
// the same order and the same tables share a checksum.
func (ds *Dataset) Checksum() ID {
	h, _ := blake2b.New(8, nil)
	writeString := func(s string) {
		var lenBuf [binary.MaxVarintLen64]byte
		n := binary.PutUvarint(lenBuf[:], uint64(len(s)))
		h.Write(lenBuf[:n])
		h.Write([]byte(s))
	}

	writeString("entries")
	for _, e := range ds.entries {
		writeString(string(e.Entity))
		for _, kw := range e.Keywords {
			writeString(kw)
		}
		writeString("")
	}

	writeString("preferred")
	for _, keyword := range slices.Sorted(maps.Keys(ds.preferred)) {
		writeString(keyword)
		writeString(string(ds.preferred[keyword]))
	}

	writeString("words")
	for _, word := range ds.topWords {
		writeString(word)
	}

	writeString("glossary")
	for _, keyword := range slices.Sorted(maps.Keys(ds.glossary)) {
		writeString(keyword)
		for _, id := range ds.glossary[keyword] {
			writeString(string(id))
		}
		writeString("")
	}

	return ID(binary.LittleEndian.Uint64(h.Sum(nil)))
}
