package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier for stored records.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EntityID identifies a single emoji by its literal symbol, e.g. "👋".
type EntityID string

// Entry is an emoji together with its built-in keywords.
// Keywords[0] is the canonical name of the emoji.
type Entry struct {
	Entity   EntityID
	Keywords []string
}

// Name returns the canonical name of the entry.
func (e Entry) Name() string {
	if len(e.Keywords) == 0 {
		return ""
	}
	return e.Keywords[0]
}

// Options personalize a single search request. The zero value applies only
// the built-in dataset.
type Options struct {
	// CustomKeywords are appended to the built-in keywords of an emoji.
	CustomKeywords map[EntityID][]string

	// CustomPreferred marks an emoji as the most relevant one for a keyword,
	// taking precedence over the dataset's own preference.
	CustomPreferred map[string]EntityID

	// RecentlySearched lists past queries, most recent first.
	RecentlySearched []string
}

// IsZero reports whether o carries no personalization at all.
func (o Options) IsZero() bool {
	return len(o.CustomKeywords) == 0 && len(o.CustomPreferred) == 0 && len(o.RecentlySearched) == 0
}

// EmojiRecord is the stored form of an Entry.
type EmojiRecord struct {
	Id       ID
	Position int // Index of the entry in dataset order
	Symbol   string
	Keywords []string
}

// RecordFromEntry builds the stored form of e at position pos.
func RecordFromEntry(e Entry, pos int) *EmojiRecord {
	return &EmojiRecord{
		Id:       IDFromContent(string(e.Entity)),
		Position: pos,
		Symbol:   string(e.Entity),
		Keywords: e.Keywords,
	}
}

// Entry converts a stored record back into a dataset entry.
func (r *EmojiRecord) Entry() Entry {
	return Entry{Entity: EntityID(r.Symbol), Keywords: r.Keywords}
}

// DatasetInfo describes the dataset held by a store.
type DatasetInfo struct {
	Checksum   ID
	Emojis     int
	Keywords   int
	ImportedAt time.Time
}
