package textspan

import "strings"

// stopWords are common words excluded from click-to-navigate behavior.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true,
	"am": true, "do": true, "does": true, "did": true,
	"has": true, "have": true, "had": true,
	"can": true, "could": true, "will": true, "would": true,
	"shall": true, "should": true, "may": true, "might": true, "must": true,
	"and": true, "or": true, "but": true, "nor": true, "so": true,
	"if": true, "then": true, "than": true, "as": true,
	"of": true, "to": true, "in": true, "on": true, "at": true,
	"by": true, "for": true, "with": true, "from": true, "into": true,
	"about": true, "over": true, "under": true, "between": true,
	"it": true, "its": true, "this": true, "that": true,
	"these": true, "those": true, "there": true, "here": true,
	"i": true, "you": true, "he": true, "she": true, "we": true,
	"they": true, "me": true, "him": true, "her": true, "us": true,
	"them": true, "my": true, "your": true, "his": true, "our": true,
	"their": true, "who": true, "whom": true, "which": true, "what": true,
	"when": true, "where": true, "why": true, "how": true,
	"not": true, "no": true, "yes": true, "all": true, "any": true,
	"each": true, "both": true, "some": true, "such": true, "more": true,
	"most": true, "other": true, "also": true, "just": true, "only": true,
	"very": true, "too": true, "own": true, "same": true,
}

// IsStopWord reports whether the word, lower-cased, is in the fixed
// stop-word set.
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(word)]
}
