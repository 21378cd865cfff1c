package similarity

import "strings"

// TokenJaccard is |A ∩ B| / |A ∪ B| over the whitespace-separated,
// lowercased tokens of a and b.
func TokenJaccard(a, b string) float64 {
	na, nb, score, done := prepare(a, b)
	if done {
		return score
	}

	ta := tokenSet(na)
	tb := tokenSet(nb)

	inter := 0
	for t := range ta {
		if tb[t] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]bool {
	fields := strings.Fields(s)
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
