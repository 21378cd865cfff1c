package validation

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abdidvp/dqscore/internal/domain"
)

// batchState is what a batch-scoped constraint learns from the sequential
// pre-pass. It is read-only once per-record evaluation starts.
type batchState struct {
	// firstOf[i] is the index of the first record sharing record i's
	// unique key, or i itself.
	firstOf []int
	// mode is the most frequent normalized value, for consistency.
	mode    string
	hasMode bool
	// cyclic[i] marks record i as part of, or leading into, a parent loop.
	cyclic []bool
}

func (cc *compiled) result(idx int) domain.ValidationResult {
	return domain.ValidationResult{
		Record:     idx,
		Field:      cc.Field,
		Constraint: cc.label,
		Kind:       cc.Kind,
		Dimension:  cc.dimension,
	}
}

func pass(r domain.ValidationResult) domain.ValidationResult {
	r.Passed = true
	return r
}

func fail(r domain.ValidationResult, expected, actual, format string, args ...any) domain.ValidationResult {
	r.Passed = false
	r.Expected = expected
	r.Actual = actual
	r.Message = fmt.Sprintf(format, args...)
	return r
}

func skip(r domain.ValidationResult, reason string) domain.ValidationResult {
	r.Passed = true
	r.Skipped = true
	r.Message = reason
	return r
}

// absent settles a missing or null operand: nullable constraints skip it,
// everything else fails. ok is false when the operand is usable.
func (cc *compiled) absent(r domain.ValidationResult, field string, v domain.Value, present bool) (domain.ValidationResult, bool) {
	if present && !v.IsNull() {
		return r, false
	}
	if cc.Nullable {
		return skip(r, fmt.Sprintf("%s is null", field)), true
	}
	if !present {
		return fail(r, "present", "missing", "%s is missing", field), true
	}
	return fail(r, "non-null", "null", "%s is null", field), true
}

func (cc *compiled) check(rec domain.Record, idx int, st *batchState, now time.Time) domain.ValidationResult {
	r := cc.result(idx)

	if cc.Kind == domain.ConstraintRequired {
		v, ok := rec.Get(cc.Field)
		switch {
		case !ok:
			return fail(r, "present", "missing", "%s is missing", cc.Field)
		case v.IsNull():
			return fail(r, "non-null", "null", "%s is null", cc.Field)
		case v.IsEmpty():
			return fail(r, "non-empty", `""`, "%s is empty", cc.Field)
		}
		return pass(r)
	}

	if cc.Kind == domain.ConstraintBusinessRule {
		return cc.checkRule(rec, r)
	}

	if cc.Kind == domain.ConstraintAcyclic {
		return cc.checkAcyclic(rec, r, st.cyclic[idx])
	}

	v, present := rec.Get(cc.Field)
	if res, done := cc.absent(r, cc.Field, v, present); done {
		return res
	}

	switch cc.Kind {
	case domain.ConstraintType:
		actual := v.Kind().String()
		if actual != string(cc.DataType) {
			return fail(r, string(cc.DataType), actual, "%s is %s, want %s", cc.Field, actual, cc.DataType)
		}
		return pass(r)

	case domain.ConstraintRange:
		f, ok := v.Float()
		if !ok {
			return fail(r, "number", v.Kind().String(), "%s is not numeric", cc.Field)
		}
		if !inBounds(f, cc.Min, cc.Max) {
			return fail(r, bounds(cc.Min, cc.Max), v.Text(), "%s = %s is out of range", cc.Field, v.Text())
		}
		return pass(r)

	case domain.ConstraintLength:
		var n int
		switch {
		case v.Kind() == domain.KindString:
			s, _ := v.Str()
			n = utf8.RuneCountInString(s)
		case v.Kind() == domain.KindList:
			n = len(v.Items())
		default:
			return fail(r, "string", v.Kind().String(), "%s has no length", cc.Field)
		}
		if !inBounds(float64(n), cc.Min, cc.Max) {
			return fail(r, "length "+bounds(cc.Min, cc.Max), fmt.Sprintf("length %d", n), "%s length %d is out of range", cc.Field, n)
		}
		return pass(r)

	case domain.ConstraintPattern:
		if !v.IsScalar() || !cc.re.MatchString(v.Text()) {
			return fail(r, cc.Pattern, v.Text(), "%s does not match %s", cc.Field, cc.Pattern)
		}
		return pass(r)

	case domain.ConstraintEnum:
		for _, a := range cc.Allowed {
			if v.Equal(a) {
				return pass(r)
			}
		}
		return fail(r, joinValues(cc.Allowed), v.Text(), "%s = %s is not an allowed value", cc.Field, v.Text())

	case domain.ConstraintFormat:
		if !v.IsScalar() || !formatCheckers[cc.Format](v.Text()) {
			return fail(r, string(cc.Format), v.Text(), "%s is not a valid %s", cc.Field, cc.Format)
		}
		return pass(r)

	case domain.ConstraintUnique:
		for _, f := range cc.Fields {
			fv, ok := rec.Get(f)
			if res, done := cc.absent(r, f, fv, ok); done {
				return res
			}
		}
		if first := st.firstOf[idx]; first != idx {
			return fail(r, "unique", v.Text(), "%s duplicates record %d", cc.Field, first)
		}
		return pass(r)

	case domain.ConstraintReferential:
		if !cc.keys[v.Normalized()] {
			return fail(r, "known key", v.Text(), "%s = %s has no parent", cc.Field, v.Text())
		}
		return pass(r)

	case domain.ConstraintCrossField:
		other, ok := rec.Get(cc.OtherField)
		if res, done := cc.absent(r, cc.OtherField, other, ok); done {
			return res
		}
		if !evalOp(cc.op, v, other) {
			return fail(r, fmt.Sprintf("%s %s %s", cc.Field, cc.op, cc.OtherField),
				fmt.Sprintf("%s vs %s", v.Text(), other.Text()),
				"%s must be %s %s", cc.Field, cc.op, cc.OtherField)
		}
		return pass(r)

	case domain.ConstraintAccuracy:
		expected, ok := rec.Get(cc.ExpectedField)
		if res, done := cc.absent(r, cc.ExpectedField, expected, ok); done {
			return res
		}
		if !withinTolerance(v, expected, cc.tolerance) {
			return fail(r, expected.Text(), v.Text(), "%s differs from %s by more than %g", cc.Field, cc.ExpectedField, cc.tolerance)
		}
		return pass(r)

	case domain.ConstraintConsistency:
		if !st.hasMode || v.Normalized() != st.mode {
			return fail(r, st.mode, v.Text(), "%s = %s differs from the prevailing value", cc.Field, v.Text())
		}
		return pass(r)

	case domain.ConstraintTimeliness:
		t, ok := parseTime(v)
		if !ok {
			return fail(r, "timestamp", v.Text(), "%s is not a timestamp", cc.Field)
		}
		if age := now.Sub(t); age > cc.MaxAge {
			return fail(r, "age <= "+cc.MaxAge.String(), "age "+age.Truncate(time.Second).String(),
				"%s is older than %s", cc.Field, cc.MaxAge)
		}
		return pass(r)
	}

	return fail(r, "", "", "unsupported kind %s", cc.Kind)
}

// checkAcyclic passes roots, whose parent field is missing or null.
func (cc *compiled) checkAcyclic(rec domain.Record, r domain.ValidationResult, cyclic bool) domain.ValidationResult {
	p, ok := rec.Get(cc.Field)
	if !ok || p.IsNull() {
		return pass(r)
	}
	key, ok := rec.Get(cc.KeyField)
	if res, done := cc.absent(r, cc.KeyField, key, ok); done {
		return res
	}
	if cyclic {
		return fail(r, "acyclic", p.Text(), "%s chain from %s = %s loops back on itself", cc.Field, cc.KeyField, key.Text())
	}
	return pass(r)
}

func (cc *compiled) checkRule(rec domain.Record, r domain.ValidationResult) domain.ValidationResult {
	rule := cc.Rule
	if w := rule.When; w != nil {
		wv, ok := rec.Get(w.Field)
		if !ok || !evalOp(w.Op, wv, w.Value) {
			return skip(r, fmt.Sprintf("rule %s does not apply", rule.Name))
		}
	}

	if rule.Predicate != nil {
		if !rule.Predicate(rec) {
			return fail(r, rule.Name, "false", "rule %s is violated", rule.Name)
		}
		return pass(r)
	}

	field := cc.ruleField()
	v, present := rec.Get(field)
	if res, done := cc.absent(r, field, v, present); done {
		return res
	}

	var target domain.Value
	var label string
	if rule.OtherField != "" {
		other, ok := rec.Get(rule.OtherField)
		if res, done := cc.absent(r, rule.OtherField, other, ok); done {
			return res
		}
		target, label = other, rule.OtherField
	} else {
		target, label = *rule.Value, rule.Value.Text()
	}

	if !evalOp(rule.Op, v, target) {
		return fail(r, fmt.Sprintf("%s %s %s", field, rule.Op, label), v.Text(), "rule %s is violated", rule.Name)
	}
	return pass(r)
}

func inBounds(f float64, lo, hi *float64) bool {
	if lo != nil && f < *lo {
		return false
	}
	if hi != nil && f > *hi {
		return false
	}
	return true
}

func bounds(lo, hi *float64) string {
	switch {
	case lo != nil && hi != nil:
		return fmt.Sprintf("[%g, %g]", *lo, *hi)
	case lo != nil:
		return fmt.Sprintf(">= %g", *lo)
	default:
		return fmt.Sprintf("<= %g", *hi)
	}
}

func withinTolerance(actual, expected domain.Value, tol float64) bool {
	a, aok := actual.Float()
	e, eok := expected.Float()
	if aok && eok {
		return math.Abs(a-e) <= tol
	}
	return actual.Normalized() == expected.Normalized()
}

func joinValues(vs []domain.Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Text()
	}
	return strings.Join(parts, ", ")
}
