package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/philocalyst/emoji-search/core"
)

// Key prefixes for different data types.
// No prefix may be a prefix of another once the ":" separator is added.
const (
	emojiRecordPrefix = "emorec"
	emojiSymbolPrefix = "emosym"
	preferencePrefix  = "kwpref"
	wordRankPrefix    = "wrdrnk"
	glossaryPrefix    = "glossa"
	datasetInfoKey    = "dsinfo"
)

// datasetPrefixes lists every prefix that belongs to an imported dataset.
var datasetPrefixes = []string{
	emojiRecordPrefix,
	emojiSymbolPrefix,
	preferencePrefix,
	wordRankPrefix,
	glossaryPrefix,
	datasetInfoKey,
}

func prefixBytes(prefix string) []byte {
	return []byte(prefix + ":")
}

// makeEmojiKey generates a key for an emoji record by ID.
func makeEmojiKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", emojiRecordPrefix, id))
}

// makeEmojiSymbolKey generates the symbol index key.
// Format: prefix:symbol
func makeEmojiSymbolKey(symbol string) []byte {
	return append(prefixBytes(emojiSymbolPrefix), symbol...)
}

// makePreferenceKey generates the key holding the preferred emoji of keyword.
func makePreferenceKey(keyword string) []byte {
	return append(prefixBytes(preferencePrefix), keyword...)
}

// makeWordRankKey generates a key for a ranked word.
// Format: prefix:rank, BigEndian so lexicographic order is rank order.
func makeWordRankKey(rank int) []byte {
	buf := prefixBytes(wordRankPrefix)
	return binary.BigEndian.AppendUint32(buf, uint32(rank))
}

// makeGlossaryKey generates the key holding the glossary entry of keyword.
func makeGlossaryKey(keyword string) []byte {
	return append(prefixBytes(glossaryPrefix), keyword...)
}

// makeDatasetInfoKey generates the key of the dataset marker.
func makeDatasetInfoKey() []byte {
	return prefixBytes(datasetInfoKey)
}

// keySuffix strips prefix and its separator from key.
func keySuffix(key []byte, prefix string) string {
	return string(key[len(prefix)+1:])
}
