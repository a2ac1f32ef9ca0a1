package search

import (
	"strings"

	"github.com/philocalyst/emoji-search/core"
)

// wordAttributes ranks one entity against a single query word.
type wordAttributes struct {
	exact           bool
	customPreferred bool
	preferred       bool
	canonical       bool
	singleWord      bool
	word            string
	// only set for prefix matches
	recent position
	rank   position
}

func isExact(a *wordAttributes) bool { return a.exact }

func isPrefix(a *wordAttributes) bool { return !a.exact }

var wordRanking = ranking[wordAttributes]{
	{name: "exact", cmp: trueFirst(isExact)},

	{name: "exact/custom-preferred", guard: isExact, cmp: trueFirst(func(a *wordAttributes) bool { return a.customPreferred })},
	{name: "exact/preferred", guard: isExact, cmp: trueFirst(func(a *wordAttributes) bool { return a.preferred })},
	{name: "exact/canonical", guard: isExact, cmp: trueFirst(func(a *wordAttributes) bool { return a.canonical })},
	{name: "exact/single-word", guard: isExact, cmp: trueFirst(func(a *wordAttributes) bool { return a.singleWord })},

	{name: "prefix/recent", guard: isPrefix, cmp: presentFirst(func(a *wordAttributes) position { return a.recent })},
	{name: "prefix/single-word", guard: isPrefix, cmp: trueFirst(func(a *wordAttributes) bool { return a.singleWord })},
	{name: "prefix/word-rank", guard: isPrefix, cmp: presentFirst(func(a *wordAttributes) position { return a.rank })},
	{name: "prefix/word", guard: isPrefix, cmp: ascending(func(a *wordAttributes) string { return a.word })},
	{name: "prefix/custom-preferred", guard: isPrefix, cmp: trueFirst(func(a *wordAttributes) bool { return a.customPreferred })},
	{name: "prefix/preferred", guard: isPrefix, cmp: trueFirst(func(a *wordAttributes) bool { return a.preferred })},
}

// wordScorer matches one normalized word against entries.
type wordScorer struct {
	idx   *index
	req   *request
	input string
}

func (s *wordScorer) score(base *entry) (wordAttributes, bool) {
	e := s.req.view(base)

	var best wordAttributes
	found := false
	consider := func(a wordAttributes) {
		if !found || wordRanking.better(&a, &best) {
			best, found = a, true
		}
	}

	for i, kw := range e.keywords {
		canonical := i == 0
		if !kw.multiWord() {
			if a, ok := s.match(e.entity, kw.text, canonical, true); ok {
				consider(a)
			}
			continue
		}
		for _, w := range kw.words {
			if a, ok := s.match(e.entity, w, canonical, false); ok {
				consider(a)
			}
		}
	}
	return best, found
}

func (s *wordScorer) match(entity core.EntityID, word string, canonical, singleWord bool) (wordAttributes, bool) {
	var exact bool
	switch {
	case word == s.input:
		exact = true
	case strings.HasPrefix(word, s.input):
	default:
		return wordAttributes{}, false
	}

	a := wordAttributes{
		exact:           exact,
		customPreferred: s.req.isCustomPreferred(word, entity),
		preferred:       s.idx.isPreferred(word, entity),
		canonical:       canonical,
		singleWord:      singleWord,
		word:            word,
	}
	if !exact {
		a.recent = positionOf(s.req.recent, word)
		a.rank = s.idx.rankOf(word)
	}
	return a, true
}
