package textspan

// UsedSet tracks link URLs already embedded during the current topic's
// lifetime, so the same resource is not spliced twice across sibling
// renders. The explanation and suggestion panes share one set; it is
// reset on every topic change.
type UsedSet struct {
	urls map[string]struct{}
}

// NewUsedSet returns an empty set.
func NewUsedSet() *UsedSet {
	return &UsedSet{urls: make(map[string]struct{})}
}

// Has reports whether the URL has been embedded.
func (u *UsedSet) Has(url string) bool {
	_, ok := u.urls[url]
	return ok
}

// Mark records the URL as embedded.
func (u *UsedSet) Mark(url string) {
	u.urls[url] = struct{}{}
}

// Reset clears the set for a new topic.
func (u *UsedSet) Reset() {
	u.urls = make(map[string]struct{})
}
