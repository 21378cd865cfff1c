package similarity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abdidvp/dqscore/internal/domain"
)

// DuplicatePair is two records whose field values are at least as similar
// as the requested threshold. First < Second.
type DuplicatePair struct {
	First      int     `json:"first"`
	Second     int     `json:"second"`
	Field      string  `json:"field"`
	A          string  `json:"a"`
	B          string  `json:"b"`
	Similarity float64 `json:"similarity"`
}

// NearDuplicates compares field across every pair of records and returns
// the pairs scoring at or above threshold, in record order. Records where
// the field is absent or empty are never paired.
func NearDuplicates(batch domain.Batch, field string, threshold float64, m Metric) ([]DuplicatePair, error) {
	if len(batch) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("similarity threshold %g out of range [0,1]", threshold)
	}

	type entry struct {
		idx  int
		text string
	}
	entries := make([]entry, 0, len(batch))
	for i, rec := range batch {
		v, ok := rec.Get(field)
		if !ok || v.IsEmpty() || !v.IsScalar() {
			continue
		}
		entries = append(entries, entry{idx: i, text: v.Text()})
	}

	score := m.Func()
	var pairs []DuplicatePair
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			s := score(entries[i].text, entries[j].text)
			if s < threshold {
				continue
			}
			pairs = append(pairs, DuplicatePair{
				First:      entries[i].idx,
				Second:     entries[j].idx,
				Field:      field,
				A:          entries[i].text,
				B:          entries[j].text,
				Similarity: s,
			})
		}
	}
	return pairs, nil
}

// ExactDuplicates returns, for each record that repeats an earlier one, its
// index mapped to the index of the first occurrence. Fields named in
// ignore (typically a surrogate id) are left out of the comparison.
func ExactDuplicates(batch domain.Batch, ignore ...string) map[int]int {
	first := make(map[string]int, len(batch))
	dups := make(map[int]int)
	for i, rec := range batch {
		key := recordKey(rec.Without(ignore...))
		if j, seen := first[key]; seen {
			dups[i] = j
			continue
		}
		first[key] = i
	}
	return dups
}

func recordKey(rec domain.Record) string {
	names := rec.Fields()
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		v, _ := rec.Get(name)
		raw, err := v.MarshalJSON()
		if err != nil {
			raw = []byte(v.Text())
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.Write(raw)
		b.WriteByte(0)
	}
	return b.String()
}
