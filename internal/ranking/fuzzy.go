package ranking

// Levenshtein computes the classic edit distance between two strings over
// their runes, using two rolling rows for O(len(b)) space.
func Levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)

	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(br)]
}

// Similarity is the normalized edit-distance similarity of two tokens,
// 1 - distance/max(len), in [0,1]. Both tokens empty has no meaningful
// similarity; callers skip that pairing, and 0 is returned.
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	maxLen := max(la, lb)
	if maxLen == 0 {
		return 0
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}
