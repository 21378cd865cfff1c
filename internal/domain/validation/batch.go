package validation

import (
	"strings"

	"github.com/abdidvp/dqscore/internal/domain"
	"golang.org/x/sync/errgroup"
)

// chunkSize is the number of records one worker evaluates at a time.
const chunkSize = 256

// ValidateBatch evaluates every constraint against every record. Results
// are ordered record-major, constraint-minor: result i*len(constraints)+j
// is record i under constraint j.
//
// Batch-scoped state (unique seen-sets, consistency modes) is computed in
// one sequential pass; records are then evaluated in parallel. Malformed
// constraints, an empty batch, or a field that no record carries are
// returned as errors before any record is evaluated.
func ValidateBatch(batch domain.Batch, constraints []domain.FieldConstraint, vctx Context) ([]domain.ValidationResult, error) {
	if len(batch) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	compiledSet, err := compileAll(constraints, vctx)
	if err != nil {
		return nil, err
	}
	if err := checkFieldsPresent(batch, compiledSet); err != nil {
		return nil, err
	}
	return run(batch, compiledSet, vctx), nil
}

// ValidateRecord evaluates one constraint against a lone record. Batch
// scoped kinds see a batch of one, so unique and consistency always pass
// for a present value.
func ValidateRecord(rec domain.Record, c domain.FieldConstraint, vctx Context) (domain.ValidationResult, error) {
	cc, err := compile(c, vctx)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	vctx.Workers = 1
	return run(domain.Batch{rec}, []*compiled{cc}, vctx)[0], nil
}

func compileAll(constraints []domain.FieldConstraint, vctx Context) ([]*compiled, error) {
	out := make([]*compiled, len(constraints))
	for i, c := range constraints {
		cc, err := compile(c, vctx)
		if err != nil {
			return nil, err
		}
		out[i] = cc
	}
	return out, nil
}

// checkFieldsPresent rejects constraints that read a field absent from the
// whole batch. Required constraints are exempt: reporting the absence is
// their job.
func checkFieldsPresent(batch domain.Batch, set []*compiled) error {
	seen := make(map[string]bool)
	for _, rec := range batch {
		for _, f := range rec.Fields() {
			seen[f] = true
		}
	}
	for _, cc := range set {
		if cc.Nullable || cc.Kind == domain.ConstraintRequired {
			continue
		}
		fields := cc.dependencies()
		if cc.Kind != domain.ConstraintBusinessRule || cc.Rule.Predicate == nil {
			fields = append([]string{cc.Field}, fields...)
		}
		for _, f := range fields {
			if !seen[f] {
				return &domain.MissingFieldError{Field: f, Constraint: cc.label}
			}
		}
	}
	return nil
}

func run(batch domain.Batch, set []*compiled, vctx Context) []domain.ValidationResult {
	states := make([]*batchState, len(set))
	for j, cc := range set {
		states[j] = prepare(batch, cc)
	}

	now := vctx.referenceTime()
	results := make([]domain.ValidationResult, len(batch)*len(set))

	var g errgroup.Group
	g.SetLimit(vctx.workers())
	for start := 0; start < len(batch); start += chunkSize {
		end := min(start+chunkSize, len(batch))
		g.Go(func() error {
			for i := start; i < end; i++ {
				for j, cc := range set {
					results[i*len(set)+j] = cc.check(batch[i], i, states[j], now)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// prepare runs the sequential pass a batch-scoped constraint needs.
func prepare(batch domain.Batch, cc *compiled) *batchState {
	switch cc.Kind {
	case domain.ConstraintUnique:
		st := &batchState{firstOf: make([]int, len(batch))}
		first := make(map[string]int, len(batch))
		for i, rec := range batch {
			st.firstOf[i] = i
			key, ok := uniqueKey(rec, cc)
			if !ok {
				continue
			}
			if j, dup := first[key]; dup {
				st.firstOf[i] = j
				continue
			}
			first[key] = i
		}
		return st

	case domain.ConstraintAcyclic:
		return &batchState{cyclic: findCycles(batch, cc)}

	case domain.ConstraintConsistency:
		st := &batchState{}
		var order []string
		counts := make(map[string]int)
		for _, rec := range batch {
			v, ok := rec.Get(cc.Field)
			if !ok || v.IsNull() {
				continue
			}
			n := v.Normalized()
			if counts[n] == 0 {
				order = append(order, n)
			}
			counts[n]++
		}
		// Ties go to the value seen first.
		best := 0
		for _, n := range order {
			if counts[n] > best {
				best = counts[n]
				st.mode, st.hasMode = n, true
			}
		}
		return st
	}
	return nil
}

func uniqueKey(rec domain.Record, cc *compiled) (string, bool) {
	fields := append([]string{cc.Field}, cc.Fields...)
	parts := make([]string, len(fields))
	for i, f := range fields {
		v, ok := rec.Get(f)
		if !ok || v.IsNull() {
			return "", false
		}
		parts[i] = v.Normalized()
	}
	return strings.Join(parts, "\x1f"), true
}

const (
	nodeVisiting uint8 = iota + 1
	nodeClean
	nodeLooped
)

// findCycles follows each record's parent chain through the key field and
// flags records whose chain comes back to a key it already passed. A chain
// that leaves the batch ends cleanly; dangling parents are referential's
// concern. When a key repeats, its first record defines the parent.
func findCycles(batch domain.Batch, cc *compiled) []bool {
	keys := make([]string, len(batch))
	keyed := make([]bool, len(batch))
	parent := make(map[string]string, len(batch))
	claimed := make(map[string]bool, len(batch))

	for i, rec := range batch {
		k, ok := rec.Get(cc.KeyField)
		if !ok || k.IsNull() {
			continue
		}
		key := k.Normalized()
		keys[i], keyed[i] = key, true
		if claimed[key] {
			continue
		}
		claimed[key] = true
		if p, ok := rec.Get(cc.Field); ok && !p.IsNull() {
			parent[key] = p.Normalized()
		}
	}

	status := make(map[string]uint8, len(parent))
	resolve := func(start string) uint8 {
		var path []string
		outcome := nodeClean
		for cur := start; ; {
			if s := status[cur]; s == nodeClean || s == nodeLooped {
				outcome = s
				break
			} else if s == nodeVisiting {
				outcome = nodeLooped
				break
			}
			status[cur] = nodeVisiting
			path = append(path, cur)
			next, ok := parent[cur]
			if !ok {
				break
			}
			cur = next
		}
		for _, n := range path {
			status[n] = outcome
		}
		return outcome
	}

	cyclic := make([]bool, len(batch))
	for i := range batch {
		if keyed[i] {
			cyclic[i] = resolve(keys[i]) == nodeLooped
		}
	}
	return cyclic
}
