package ranking

import (
	"math"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
		{"beyonce", "beyoncé", 1},
	}

	for _, tc := range cases {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		// Distance is symmetric.
		if got := Levenshtein(tc.b, tc.a); got != tc.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	t.Run("Identical Tokens", func(t *testing.T) {
		if got := Similarity("love", "love"); got != 1.0 {
			t.Errorf("expected 1.0, got %f", got)
		}
	})

	t.Run("Single Typo", func(t *testing.T) {
		got := Similarity("skelter", "skeleter")
		want := 1.0 - 1.0/8.0
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("expected %f, got %f", want, got)
		}
	})

	t.Run("Disjoint Tokens", func(t *testing.T) {
		if got := Similarity("abc", "xyz"); got != 0.0 {
			t.Errorf("expected 0.0, got %f", got)
		}
	})

	t.Run("Both Empty", func(t *testing.T) {
		if got := Similarity("", ""); got != 0.0 {
			t.Errorf("expected 0.0 for the undefined pairing, got %f", got)
		}
	})

	t.Run("Bounded", func(t *testing.T) {
		pairs := [][2]string{{"a", "abcdef"}, {"remix", "mix"}, {"", "x"}}
		for _, p := range pairs {
			got := Similarity(p[0], p[1])
			if got < 0 || got > 1 {
				t.Errorf("Similarity(%q, %q) = %f out of [0,1]", p[0], p[1], got)
			}
		}
	})
}
