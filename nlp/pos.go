package nlp

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(word string) bool {
	_, ok := s[word]
	return ok
}

var (
	pronouns = newWordSet(
		"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
		"my", "your", "his", "its", "our", "their", "mine", "yours", "hers", "ours", "theirs",
		"myself", "yourself", "himself", "herself", "itself", "ourselves", "themselves", "yourselves",
		"this", "that", "these", "those", "who", "whom", "which", "what",
	)

	prepositions = newWordSet(
		"about", "across", "after", "against", "along", "among", "around", "as", "at",
		"before", "behind", "beneath", "beside", "between", "beyond", "by", "despite", "during",
		"except", "for", "from", "in", "inside", "into", "near", "of", "on", "onto", "out",
		"outside", "over", "since", "than", "through", "throughout", "to", "toward", "under",
		"until", "upon", "via", "with", "within", "without",
	)

	conjunctions = newWordSet("for", "and", "nor", "but", "or", "yet", "so")

	articles = newWordSet("a", "an", "the")

	predeterminers = newWordSet("all", "both")

	// A predeterminer following one of these is part of a phrase ("calling all").
	predeterminerExceptions = newWordSet("calling")

	otherStopWords = newWordSet(
		"is", "are", "was", "were", "if", "will", "would", "be", "being", "one", "have", "has",
		"had", "can", "more", "then", "do", "don't", "first", "even", "there", "only", "also",
		"such", "each", "because", "however", "very", "must", "due",
	)
)

// FilterPartsOfSpeech returns the words that are not function words, in their
// original order. Pronouns, prepositions, conjunctions, articles and common
// filler words are always dropped. Predeterminers are dropped unless the
// previous word of the input marks them as part of a phrase.
func FilterPartsOfSpeech(words []string) []string {
	filtered := make([]string, 0, len(words))
	for i, word := range words {
		if isFunctionWord(words, i) {
			continue
		}
		filtered = append(filtered, word)
	}
	return filtered
}

func isFunctionWord(words []string, i int) bool {
	word := words[i]
	switch {
	case pronouns.has(word), prepositions.has(word), conjunctions.has(word),
		articles.has(word), otherStopWords.has(word):
		return true
	case predeterminers.has(word):
		return i == 0 || !predeterminerExceptions.has(words[i-1])
	default:
		return false
	}
}
