package ranking

import "strings"

// NGrams derives the set of n-gram phrases from a token sequence, each
// n-gram being n consecutive tokens joined by a single space. Returns an
// empty set when fewer than n tokens are available.
func NGrams(tokens []string, size int) map[string]struct{} {
	grams := make(map[string]struct{})
	if size <= 0 || len(tokens) < size {
		return grams
	}

	for i := 0; i+size <= len(tokens); i++ {
		grams[strings.Join(tokens[i:i+size], " ")] = struct{}{}
	}
	return grams
}

// overlap counts the members of a present in b.
func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
