package textspan

import "strings"

// trailingPunct is the punctuation split off the end of a word and kept
// outside the clickable unit.
const trailingPunct = ".,!?;:"

// Tokenize splits plain prose into fragments, preserving whitespace runs
// verbatim. Each non-whitespace token has its trailing punctuation
// detached; if the remaining word is empty or a stop word it stays inert,
// otherwise it becomes a clickable word fragment carrying the
// original-case word with punctuation stripped.
func Tokenize(text string) []Fragment {
	var frags []Fragment
	for i := 0; i < len(text); {
		j := i
		if isSpace(text[i]) {
			for j < len(text) && isSpace(text[j]) {
				j++
			}
			frags = append(frags, Fragment{Kind: FragmentText, Text: text[i:j]})
		} else {
			for j < len(text) && !isSpace(text[j]) {
				j++
			}
			frags = append(frags, wordFragments(text[i:j])...)
		}
		i = j
	}
	return frags
}

// wordFragments renders a single non-whitespace token as either one inert
// fragment or a clickable word followed by its detached punctuation.
func wordFragments(tok string) []Fragment {
	cut := len(tok)
	for cut > 0 && strings.IndexByte(trailingPunct, tok[cut-1]) >= 0 {
		cut--
	}
	word, punct := tok[:cut], tok[cut:]

	if word == "" || IsStopWord(word) {
		return []Fragment{{Kind: FragmentText, Text: tok}}
	}

	frags := []Fragment{{Kind: FragmentWord, Text: word, Word: word}}
	if punct != "" {
		frags = append(frags, Fragment{Kind: FragmentText, Text: punct})
	}
	return frags
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
