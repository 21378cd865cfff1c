package similarity

// LevenshteinDistance counts the single-rune insertions, deletions and
// substitutions that turn a into b.
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Levenshtein is 1 - distance/max(len(a), len(b)).
func Levenshtein(a, b string) float64 {
	na, nb, score, done := prepare(a, b)
	if done {
		return score
	}
	maxLen := max(len([]rune(na)), len([]rune(nb)))
	return 1 - float64(LevenshteinDistance(na, nb))/float64(maxLen)
}
