// Package textspan turns generated prose into an ordered list of render
// fragments: embedded resource links, clickable words, and inert text.
// Concatenating the fragments' text reproduces the input byte-for-byte.
package textspan

import (
	"sort"
	"strings"

	"topictrail/internal/topic"
)

// FragmentKind classifies a rendered fragment.
type FragmentKind string

const (
	// FragmentText is inert text: whitespace, punctuation, stop words.
	FragmentText FragmentKind = "text"
	// FragmentWord is a clickable word that pivots to a new topic.
	FragmentWord FragmentKind = "word"
	// FragmentLink is a resource link spliced into the prose.
	FragmentLink FragmentKind = "link"
)

// Fragment is one visible unit of rendered output. Text always holds the
// exact source substring. Word carries the punctuation-stripped,
// original-case word for FragmentWord; URL is set for FragmentLink.
type Fragment struct {
	Kind FragmentKind `json:"kind"`
	Text string       `json:"text"`
	Word string       `json:"word,omitempty"`
	URL  string       `json:"url,omitempty"`
}

// span is the first-pass unit: a run of plain text, or a spliced link.
type span struct {
	text string
	link *topic.Link
}

// weave splices each candidate link into the first plain span containing
// its title verbatim. Candidates are tried longest title first so a short
// title nested inside a longer one (e.g. "AI" inside "Artificial
// Intelligence") cannot fragment the longer match. Each link is embedded
// at most once; links whose URL is already in used are skipped, and every
// embedded link is marked used. Titles that never match are silently
// omitted.
func weave(text string, links []topic.Link, used *UsedSet) []span {
	spans := []span{{text: text}}

	ordered := make([]topic.Link, len(links))
	copy(ordered, links)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Title) > len(ordered[j].Title)
	})

	for i := range ordered {
		l := ordered[i]
		if l.Title == "" || l.URL == "" || used.Has(l.URL) {
			continue
		}
		for si := 0; si < len(spans); si++ {
			if spans[si].link != nil {
				continue
			}
			idx := strings.Index(spans[si].text, l.Title)
			if idx < 0 {
				continue
			}

			before := spans[si].text[:idx]
			after := spans[si].text[idx+len(l.Title):]
			repl := make([]span, 0, 3)
			if before != "" {
				repl = append(repl, span{text: before})
			}
			repl = append(repl, span{text: l.Title, link: &ordered[i]})
			if after != "" {
				repl = append(repl, span{text: after})
			}

			rest := append(repl, spans[si+1:]...)
			spans = append(spans[:si], rest...)
			used.Mark(l.URL)
			break
		}
	}
	return spans
}

// Render produces the fragment list for a block of prose. Links already
// present in used are not embedded again; links embedded here are added
// to used, so sibling renders against the same link set (explanation and
// suggestion) never duplicate a resource.
func Render(text string, links []topic.Link, used *UsedSet) []Fragment {
	var frags []Fragment
	for _, sp := range weave(text, links, used) {
		if sp.link != nil {
			frags = append(frags, Fragment{Kind: FragmentLink, Text: sp.text, URL: sp.link.URL})
			continue
		}
		frags = append(frags, Tokenize(sp.text)...)
	}
	return frags
}

// Flatten concatenates the visible text of all fragments.
func Flatten(frags []Fragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Text)
	}
	return b.String()
}
