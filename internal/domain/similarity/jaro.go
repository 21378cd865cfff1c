package similarity

const (
	// winklerPrefixLimit caps the common prefix that earns a bonus.
	winklerPrefixLimit = 4
	winklerScale       = 0.1
)

// Jaro returns the Jaro similarity of a and b.
func Jaro(a, b string) float64 {
	na, nb, score, done := prepare(a, b)
	if done {
		return score
	}
	return jaro([]rune(na), []rune(nb))
}

// JaroWinkler boosts the Jaro score for strings sharing a prefix of up to
// four runes, with scale 0.1.
func JaroWinkler(a, b string) float64 {
	na, nb, score, done := prepare(a, b)
	if done {
		return score
	}
	ra, rb := []rune(na), []rune(nb)
	j := jaro(ra, rb)

	prefix := 0
	for prefix < min(len(ra), len(rb), winklerPrefixLimit) && ra[prefix] == rb[prefix] {
		prefix++
	}
	return j + winklerScale*float64(prefix)*(1-j)
}

func jaro(s1, s2 []rune) float64 {
	// The greedy match is order sensitive; fix the order so the score is
	// symmetric.
	if string(s1) > string(s2) {
		s1, s2 = s2, s1
	}

	window := max(len(s1), len(s2))/2 - 1
	if window < 0 {
		window = 0
	}

	m1 := make([]bool, len(s1))
	m2 := make([]bool, len(s2))
	matches := 0
	for i := range s1 {
		lo := max(0, i-window)
		hi := min(i+window+1, len(s2))
		for j := lo; j < hi; j++ {
			if m2[j] || s1[i] != s2[j] {
				continue
			}
			m1[i], m2[j] = true, true
			matches++
			break
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions := 0
	k := 0
	for i := range s1 {
		if !m1[i] {
			continue
		}
		for !m2[k] {
			k++
		}
		if s1[i] != s2[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	return (m/float64(len(s1)) + m/float64(len(s2)) + (m-float64(transpositions)/2)/m) / 3
}
