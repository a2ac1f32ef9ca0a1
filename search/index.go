package search

import (
	"strings"

	"github.com/philocalyst/emoji-search/core"
	"github.com/philocalyst/emoji-search/nlp"
)

// keyword is a normalized keyword and its space-separated words.
type keyword struct {
	text  string
	words []string
}

func newKeyword(raw string) keyword {
	text := nlp.Normalize(raw)
	return keyword{text: text, words: strings.Split(text, " ")}
}

func (k keyword) multiWord() bool {
	return len(k.words) > 1
}

// entry is the searchable view of one entity. Built-in keywords are
// normalized once when the Searcher is created.
type entry struct {
	entity   core.EntityID
	keywords []keyword
	// every keyword word in keyword order, duplicates kept
	words      []string
	vocabulary map[string]struct{}
	// words without duplicates, first occurrence order
	jointed []string
}

func newEntry(entity core.EntityID, keywords []keyword) entry {
	e := entry{
		entity:     entity,
		keywords:   keywords,
		vocabulary: make(map[string]struct{}),
	}
	for _, kw := range keywords {
		for _, w := range kw.words {
			e.words = append(e.words, w)
			if _, seen := e.vocabulary[w]; !seen {
				e.vocabulary[w] = struct{}{}
				e.jointed = append(e.jointed, w)
			}
		}
	}
	return e
}

// extend returns a copy of e with custom keywords appended after the
// built-in ones. e itself is shared between requests and never modified.
func (e *entry) extend(custom []keyword) *entry {
	if len(custom) == 0 {
		return e
	}
	keywords := make([]keyword, 0, len(e.keywords)+len(custom))
	keywords = append(keywords, e.keywords...)
	keywords = append(keywords, custom...)
	extended := newEntry(e.entity, keywords)
	return &extended
}

func (e *entry) hasWord(word string) bool {
	_, ok := e.vocabulary[word]
	return ok
}

// index holds the normalized dataset the matchers read from.
type index struct {
	entries   []entry
	preferred map[string]core.EntityID
	dataset   *core.Dataset
}

func buildIndex(ds *core.Dataset) *index {
	entries := ds.Entries()
	idx := &index{
		entries:   make([]entry, len(entries)),
		preferred: make(map[string]core.EntityID),
		dataset:   ds,
	}
	for i, e := range entries {
		keywords := make([]keyword, len(e.Keywords))
		for j, kw := range e.Keywords {
			keywords[j] = newKeyword(kw)
		}
		idx.entries[i] = newEntry(e.Entity, keywords)
	}
	for kw, entity := range ds.Preferences() {
		idx.preferred[nlp.Normalize(kw)] = entity
	}
	return idx
}

// rankOf returns the frequency rank of word, absent for uncommon words.
func (idx *index) rankOf(word string) position {
	rank, ok := idx.dataset.WordRank(word)
	return position{index: rank, ok: ok}
}

func (idx *index) isPreferred(word string, entity core.EntityID) bool {
	preferred, ok := idx.preferred[word]
	return ok && preferred == entity
}

// request is the per-call, read-only view of core.Options shared by every
// scoring task of one search.
type request struct {
	custom          map[core.EntityID][]keyword
	customPreferred map[string]core.EntityID
	recent          map[string]int
}

func newRequest(opts core.Options) *request {
	req := &request{
		custom:          make(map[core.EntityID][]keyword, len(opts.CustomKeywords)),
		customPreferred: make(map[string]core.EntityID, len(opts.CustomPreferred)),
		recent:          make(map[string]int, len(opts.RecentlySearched)),
	}
	for entity, raw := range opts.CustomKeywords {
		keywords := make([]keyword, 0, len(raw))
		for _, kw := range raw {
			keywords = append(keywords, newKeyword(kw))
		}
		req.custom[entity] = keywords
	}
	for kw, entity := range opts.CustomPreferred {
		req.customPreferred[nlp.Normalize(kw)] = entity
	}
	// Earlier inputs are more recent; a repeated input keeps its most recent slot.
	for i, input := range opts.RecentlySearched {
		input = strings.TrimSpace(nlp.Normalize(input))
		if _, dup := req.recent[input]; !dup {
			req.recent[input] = i
		}
	}
	return req
}

func (req *request) view(e *entry) *entry {
	return e.extend(req.custom[e.entity])
}

func (req *request) isCustomPreferred(word string, entity core.EntityID) bool {
	preferred, ok := req.customPreferred[word]
	return ok && preferred == entity
}
