package topic

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Entropy  ", "Entropy"},
		{"\tGame Theory\n", "Game Theory"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Entropy", "entropy", true},
		{"Entropy", " ENTROPY ", true},
		{"Entropy", "Enthalpy", false},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRandomDrawsFromPool(t *testing.T) {
	seen := false
	got := Random()
	for _, s := range starters {
		if s == got {
			seen = true
			break
		}
	}
	if !seen {
		t.Errorf("Random() returned %q, not in the starter pool", got)
	}
}
