package nlp

import "strings"

// stemRule rewrites words ending in wordSuffix when the base reduction ends in
// stemSuffix (or left the word untouched). cut < 0 keeps the whole word.
type stemRule struct {
	wordSuffix string
	stemSuffix string
	cut        int
}

const keepWord = -1

// stemRules is ordered; the first rule that fires wins.
var stemRules = []stemRule{
	{"y", "i", keepWord},
	{"Y", "i", keepWord},
	{"ying", "i", 3},
	{"yings", "i", 4},
	{"ing", "e", 3},
	{"ings", "e", 4},
	{"ingly", "e", 5},
	{"ility", "l", 4},
	{"ilities", "l", 6},
	{"ys", "i", 1},
	{"est", "est", 3},
}

// Stem maps word onto an approximate root form.
//
// A base reduction strips one common suffix, then the override table above
// gets a chance to replace it. Stem never fails; a word with nothing to strip
// comes back unchanged.
func Stem(word string) string {
	base := baseStem(word)

	for _, rule := range stemRules {
		if !strings.HasSuffix(word, rule.wordSuffix) {
			continue
		}
		if !strings.HasSuffix(base, rule.stemSuffix) && base != word {
			continue
		}
		if rule.cut == keepWord {
			return word
		}
		if len(word) > rule.cut {
			return word[:len(word)-rule.cut]
		}
	}

	return base
}

func baseStem(word string) string {
	switch {
	case strings.HasSuffix(word, "ing"):
		return word[:len(word)-3]
	case strings.HasSuffix(word, "ed") && len(word) > 3:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 2:
		return word[:len(word)-1]
	case strings.HasSuffix(word, "ly") && len(word) > 3:
		return word[:len(word)-2]
	default:
		return word
	}
}
