package search

import "strings"

// phraseAttributes ranks one entity against a multi-word query.
type phraseAttributes struct {
	multiWord       bool
	inOrder         bool
	inOrderExact    bool
	customPreferred bool
	exactMatches    int
	prefixMatches   int
	keywordWords    int
}

func isMultiWord(a *phraseAttributes) bool { return a.multiWord }

func isJointed(a *phraseAttributes) bool { return !a.multiWord }

func isInOrder(a *phraseAttributes) bool { return a.multiWord && a.inOrder }

func isOutOfOrder(a *phraseAttributes) bool { return a.multiWord && !a.inOrder }

func exactMatches(a *phraseAttributes) int { return a.exactMatches }

func prefixMatches(a *phraseAttributes) int { return a.prefixMatches }

var phraseRanking = ranking[phraseAttributes]{
	{name: "multi-word", cmp: trueFirst(isMultiWord)},

	{name: "multi-word/in-order", guard: isMultiWord, cmp: trueFirst(func(a *phraseAttributes) bool { return a.inOrder })},
	{name: "in-order/exact", guard: isInOrder, cmp: trueFirst(func(a *phraseAttributes) bool { return a.inOrderExact })},
	{name: "in-order/custom-preferred", guard: isInOrder, cmp: trueFirst(func(a *phraseAttributes) bool { return a.customPreferred })},
	{name: "out-of-order/exact", guard: isOutOfOrder, cmp: descending(exactMatches)},
	{name: "out-of-order/prefix", guard: isOutOfOrder, cmp: descending(prefixMatches)},
	{name: "multi-word/keyword-words", guard: isMultiWord, cmp: ascending(func(a *phraseAttributes) int { return a.keywordWords })},

	{name: "jointed/exact", guard: isJointed, cmp: descending(exactMatches)},
	{name: "jointed/prefix", guard: isJointed, cmp: descending(prefixMatches)},
}

// phraseScorer matches a raw multi-word phrase against entries.
type phraseScorer struct {
	req    *request
	phrase string
	words  []string
}

func (s *phraseScorer) score(base *entry) (phraseAttributes, bool) {
	e := s.req.view(base)

	var best phraseAttributes
	found := false
	consider := func(a phraseAttributes) {
		if !found || phraseRanking.better(&a, &best) {
			best, found = a, true
		}
	}

	for _, kw := range e.keywords {
		if !kw.multiWord() {
			continue
		}
		switch {
		case kw.text == s.phrase:
			consider(phraseAttributes{
				multiWord:       true,
				inOrder:         true,
				inOrderExact:    true,
				customPreferred: s.req.isCustomPreferred(kw.text, e.entity),
			})
		case strings.HasPrefix(kw.text, s.phrase) || strings.Contains(kw.text, " "+s.phrase):
			consider(phraseAttributes{
				multiWord:       true,
				inOrder:         true,
				customPreferred: s.req.isCustomPreferred(kw.text, e.entity),
				keywordWords:    len(kw.words),
			})
		default:
			if len(kw.words) < len(s.words) {
				continue
			}
			exact, prefix := countMatches(s.words, kw.words)
			if exact == 0 && prefix == 0 {
				continue
			}
			consider(phraseAttributes{
				multiWord:     true,
				exactMatches:  exact,
				prefixMatches: prefix,
				keywordWords:  len(kw.words),
			})
		}
	}
	if found {
		return best, true
	}

	exact, prefix := countMatches(s.words, e.jointed)
	if exact == 0 && prefix == 0 {
		return phraseAttributes{}, false
	}
	return phraseAttributes{exactMatches: exact, prefixMatches: prefix}, true
}

// countMatches counts query words that equal some candidate and words that
// only prefix one. If any query word matches nothing, both counts are zero,
// even for the words that did match.
func countMatches(words, candidates []string) (exact, prefix int) {
	for _, w := range words {
		hasExact, hasPrefix := false, false
		for _, c := range candidates {
			if c == w {
				hasExact = true
				break
			}
			if strings.HasPrefix(c, w) {
				hasPrefix = true
			}
		}
		switch {
		case hasExact:
			exact++
		case hasPrefix:
			prefix++
		default:
			return 0, 0
		}
	}
	return exact, prefix
}
