package history

import "testing"

func TestPushAdvancesCursor(t *testing.T) {
	tr := New()
	if _, ok := tr.Current(); ok {
		t.Fatal("empty trail should have no current topic")
	}

	for i, s := range []string{"A", "B", "C"} {
		if !tr.Push(s) {
			t.Fatalf("Push(%q) returned false", s)
		}
		if tr.Cursor() != i {
			t.Errorf("after Push(%q): cursor = %d, want %d", s, tr.Cursor(), i)
		}
	}
	if cur, _ := tr.Current(); cur != "C" {
		t.Errorf("current = %q, want %q", cur, "C")
	}
}

func TestPushIgnoresEmptyAndDuplicate(t *testing.T) {
	tr := New()
	tr.Push("Entropy")

	tests := []string{"", "   ", "Entropy", "entropy", " ENTROPY "}
	for _, s := range tests {
		if tr.Push(s) {
			t.Errorf("Push(%q) should be a no-op", s)
		}
	}
	if tr.Len() != 1 || tr.Cursor() != 0 {
		t.Errorf("trail changed: len=%d cursor=%d, want 1/0", tr.Len(), tr.Cursor())
	}
}

func TestPushNormalizes(t *testing.T) {
	tr := New()
	tr.Push("  Game Theory  ")
	if cur, _ := tr.Current(); cur != "Game Theory" {
		t.Errorf("current = %q, want trimmed topic", cur)
	}
}

func TestBackThenForwardRestores(t *testing.T) {
	tr := New()
	tr.Push("A")
	tr.Push("B")
	tr.Push("C")

	if got, ok := tr.Back(); !ok || got != "B" {
		t.Fatalf("Back() = %q/%v, want B/true", got, ok)
	}
	if got, ok := tr.Forward(); !ok || got != "C" {
		t.Fatalf("Forward() = %q/%v, want C/true", got, ok)
	}
}

func TestBoundariesAreNoOps(t *testing.T) {
	tr := New()
	if _, ok := tr.Back(); ok {
		t.Error("Back on empty trail should be a no-op")
	}
	if _, ok := tr.Forward(); ok {
		t.Error("Forward on empty trail should be a no-op")
	}

	tr.Push("A")
	if _, ok := tr.Back(); ok {
		t.Error("Back at first entry should be a no-op")
	}
	if _, ok := tr.Forward(); ok {
		t.Error("Forward at last entry should be a no-op")
	}
	if tr.CanBack() || tr.CanForward() {
		t.Error("single-entry trail should allow neither direction")
	}
}

func TestPushTruncatesForwardEntries(t *testing.T) {
	tr := New()
	tr.Push("A")
	tr.Push("B")
	tr.Push("C")
	tr.Back()
	tr.Back()

	if cur, _ := tr.Current(); cur != "A" {
		t.Fatalf("current = %q, want A", cur)
	}

	tr.Push("D")
	got := tr.Topics()
	want := []string{"A", "D"}
	if len(got) != len(want) {
		t.Fatalf("topics = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("topics = %v, want %v", got, want)
		}
	}
	if cur, _ := tr.Current(); cur != "D" {
		t.Errorf("current = %q, want D", cur)
	}
	if tr.CanForward() {
		t.Error("forward entries should have been discarded")
	}
}
