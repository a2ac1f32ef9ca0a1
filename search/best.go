package search

import "strings"

// bestAttributes counts how the query words and their stems hit the words
// of an entity's keywords.
type bestAttributes struct {
	exactOriginal  int
	exactStemmed   int
	prefixOriginal int
	prefixStemmed  int
}

func (a bestAttributes) zero() bool {
	return a.exactOriginal == 0 && a.exactStemmed == 0 && a.prefixOriginal == 0 && a.prefixStemmed == 0
}

var bestRanking = ranking[bestAttributes]{
	{name: "exact", cmp: descending(func(a *bestAttributes) int { return a.exactOriginal + a.exactStemmed })},
	{name: "exact-original", cmp: descending(func(a *bestAttributes) int { return a.exactOriginal })},
	{name: "prefix-original", cmp: descending(func(a *bestAttributes) int { return a.prefixOriginal })},
	{name: "prefix-stemmed", cmp: descending(func(a *bestAttributes) int { return a.prefixStemmed })},
}

// bestScorer matches filtered query words, and their stems at the same
// positions, against entries.
type bestScorer struct {
	req   *request
	words []string
	stems []string
}

func (s *bestScorer) score(base *entry) (bestAttributes, bool) {
	e := s.req.view(base)

	var a bestAttributes
	for i, word := range s.words {
		stem := s.stems[i]
		switch {
		case e.hasWord(word):
			a.exactOriginal++
		case word != stem && e.hasWord(stem):
			a.exactStemmed++
		default:
			stemOnly := false
			for _, w := range e.words {
				if !strings.HasPrefix(w, stem) {
					continue
				}
				stemOnly = true
				if strings.HasPrefix(w, word) {
					a.prefixOriginal++
					stemOnly = false
					break
				}
			}
			if stemOnly {
				a.prefixStemmed++
			}
		}
	}
	return a, !a.zero()
}
