// Package topic defines the core data model for topic exploration.
package topic

import "strings"

// Normalize trims surrounding whitespace from a raw topic string.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Equal reports whether two topics refer to the same subject.
// Topic equality is case-insensitive.
func Equal(a, b string) bool {
	return strings.EqualFold(Normalize(a), Normalize(b))
}

// Link is a resource reference returned alongside an explanation. The
// generation contract promises that Title occurs verbatim in the
// accompanying prose; the renderer assumes but does not verify this.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Answer is the structured result produced for a topic.
type Answer struct {
	Explanation string `json:"explanation"`
	Suggestion  string `json:"suggestion"`
	Links       []Link `json:"links"`
}
