// Package history implements browser-style back/forward navigation over
// the sequence of visited topics.
package history

import "topictrail/internal/topic"

// Trail is an ordered sequence of visited topics plus a cursor pointing
// at the current one. The cursor stays within [-1, len-1]; -1 means
// nothing has been visited yet.
type Trail struct {
	entries []string
	cursor  int
}

// New returns an empty trail.
func New() *Trail {
	return &Trail{cursor: -1}
}

// Push visits a new topic and returns true if the trail changed.
// Topics that are empty after trimming, or case-insensitively equal to
// the current topic, are ignored. Pushing discards any forward entries
// beyond the cursor, matching browser history semantics.
func (t *Trail) Push(raw string) bool {
	s := topic.Normalize(raw)
	if s == "" {
		return false
	}
	if cur, ok := t.Current(); ok && topic.Equal(cur, s) {
		return false
	}
	t.entries = append(t.entries[:t.cursor+1], s)
	t.cursor = len(t.entries) - 1
	return true
}

// Back moves the cursor to the previous topic and returns it.
// At the start of the trail it is a no-op and returns ok=false.
func (t *Trail) Back() (string, bool) {
	if t.cursor <= 0 {
		return "", false
	}
	t.cursor--
	return t.entries[t.cursor], true
}

// Forward moves the cursor to the next topic and returns it.
// At the end of the trail it is a no-op and returns ok=false.
func (t *Trail) Forward() (string, bool) {
	if t.cursor >= len(t.entries)-1 {
		return "", false
	}
	t.cursor++
	return t.entries[t.cursor], true
}

// Current returns the topic under the cursor.
func (t *Trail) Current() (string, bool) {
	if t.cursor < 0 {
		return "", false
	}
	return t.entries[t.cursor], true
}

// CanBack reports whether Back would move the cursor.
func (t *Trail) CanBack() bool { return t.cursor > 0 }

// CanForward reports whether Forward would move the cursor.
func (t *Trail) CanForward() bool { return t.cursor < len(t.entries)-1 }

// Len returns the number of entries in the trail.
func (t *Trail) Len() int { return len(t.entries) }

// Cursor returns the current cursor position.
func (t *Trail) Cursor() int { return t.cursor }

// Topics returns a copy of the visited sequence in order.
func (t *Trail) Topics() []string {
	out := make([]string, len(t.entries))
	copy(out, t.entries)
	return out
}
