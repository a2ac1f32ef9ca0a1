package nlp

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// stripped characters are removed outright; hyphens become spaces and the
// typographic apostrophe collapses onto the ASCII one.
var punctuation = strings.NewReplacer(
	`"`, "",
	"“", "",
	"”", "",
	":", "",
	";", "",
	"(", "",
	")", "",
	",", "",
	".", "",
	"!", "",
	"?", "",
	"-", " ",
	"’", "'",
	"‘", "'",
	"ʼ", "'",
)

// Normalize returns the canonical comparison form of s.
// The result is lowercased with the punctuation above removed. Leading and
// trailing whitespace is kept; callers that need a trimmed query trim it.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	// A Caser keeps state between calls and cannot be shared across goroutines.
	lower := cases.Lower(language.Und).String(s)
	return punctuation.Replace(lower)
}
