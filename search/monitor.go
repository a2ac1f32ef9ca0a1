package search

import "github.com/philocalyst/emoji-search/core"

// Matcher names the strategy a search used.
type Matcher string

const (
	// MatcherEntity means the query was itself a known entity.
	MatcherEntity Matcher = "entity"
	// MatcherWord is the single-word matcher.
	MatcherWord Matcher = "word"
	// MatcherPhrase is the raw multi-word matcher.
	MatcherPhrase Matcher = "phrase"
	// MatcherBest is the stemmed, function-word-filtered matcher.
	MatcherBest Matcher = "best"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to trace matcher selection and fallbacks.
// Every Start is followed by exactly one Finish; a failed call finishes
// with nil results.
type SearchMonitor interface {
	Start(query string)
	MatcherSelected(matcher Matcher, input string)
	FallbackTaken(matcher Matcher, input string)
	Finish(results []core.EntityID)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                      {}
func (n *noopMonitor) MatcherSelected(_ Matcher, _ string) {}
func (n *noopMonitor) FallbackTaken(_ Matcher, _ string)   {}
func (n *noopMonitor) Finish(_ []core.EntityID)            {}
