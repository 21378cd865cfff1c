// Package similarity scores how alike two strings are. Every metric
// returns a value in [0,1], is symmetric, and compares the trimmed,
// lowercased forms of its inputs.
package similarity

import (
	"fmt"
	"strings"
)

// Metric selects a similarity function.
type Metric string

const (
	MetricJaroWinkler Metric = "jaro-winkler"
	MetricLevenshtein Metric = "levenshtein"
	MetricJaccard     Metric = "jaccard"
)

// Metrics lists every supported metric.
var Metrics = []Metric{MetricJaroWinkler, MetricLevenshtein, MetricJaccard}

// ParseMetric resolves a metric name. The empty string selects Jaro-Winkler.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "jaro-winkler", "jarowinkler", "jw":
		return MetricJaroWinkler, nil
	case "levenshtein", "edit":
		return MetricLevenshtein, nil
	case "jaccard", "token-jaccard", "tokens":
		return MetricJaccard, nil
	default:
		return "", fmt.Errorf("unknown similarity metric %q (valid: jaro-winkler, levenshtein, jaccard)", s)
	}
}

// Func returns the scoring function for m.
func (m Metric) Func() func(a, b string) float64 {
	switch m {
	case MetricLevenshtein:
		return Levenshtein
	case MetricJaccard:
		return TokenJaccard
	default:
		return JaroWinkler
	}
}

// Compare scores a and b with the named metric.
func Compare(m Metric, a, b string) float64 {
	return m.Func()(a, b)
}

// StringSimilarity is the default metric, Jaro-Winkler.
func StringSimilarity(a, b string) float64 {
	return JaroWinkler(a, b)
}

// Normalize trims and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// prepare normalizes both inputs and settles the trivial cases. done is
// true when score is final.
func prepare(a, b string) (na, nb string, score float64, done bool) {
	na, nb = Normalize(a), Normalize(b)
	switch {
	case na == nb:
		return na, nb, 1.0, true
	case na == "" || nb == "":
		return na, nb, 0.0, true
	}
	return na, nb, 0, false
}
