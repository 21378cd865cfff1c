package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdidvp/dqscore/internal/domain"
)

// DefaultTolerance is the absolute tolerance for accuracy constraints.
const DefaultTolerance = 0.01

// compiled is a constraint checked for well-formedness, with its regex,
// key set and defaults resolved once per run.
type compiled struct {
	domain.FieldConstraint
	label     string
	dimension domain.Dimension
	re        *regexp.Regexp
	keys      map[string]bool
	tolerance float64
	op        domain.CompareOp
}

func invalid(c domain.FieldConstraint, format string, args ...any) error {
	return &domain.InvalidConstraintError{Constraint: c.Label(), Reason: fmt.Sprintf(format, args...)}
}

func compile(c domain.FieldConstraint, vctx Context) (*compiled, error) {
	if strings.TrimSpace(c.Field) == "" {
		return nil, invalid(c, "field is required")
	}
	dim, known := domain.DimensionOf(c.Kind)
	if !known {
		return nil, invalid(c, "unknown kind %q", c.Kind)
	}
	if c.Dimension != "" {
		if _, ok := domain.ParseDimension(string(c.Dimension)); !ok {
			return nil, invalid(c, "unknown dimension %q", c.Dimension)
		}
		dim = c.Dimension
	}

	cc := &compiled{FieldConstraint: c, label: c.Label(), dimension: dim}

	switch c.Kind {
	case domain.ConstraintRequired:
		if c.Nullable {
			return nil, invalid(c, "a required field cannot be nullable")
		}

	case domain.ConstraintType:
		switch c.DataType {
		case domain.TypeInteger, domain.TypeFloat, domain.TypeString, domain.TypeBoolean:
		case "":
			return nil, invalid(c, "data_type is required")
		default:
			return nil, invalid(c, "unknown data_type %q", c.DataType)
		}

	case domain.ConstraintRange, domain.ConstraintLength:
		if c.Min == nil && c.Max == nil {
			return nil, invalid(c, "%s needs min or max", c.Kind)
		}
		if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
			return nil, invalid(c, "min %g exceeds max %g", *c.Min, *c.Max)
		}

	case domain.ConstraintPattern:
		if c.Pattern == "" {
			return nil, invalid(c, "pattern is required")
		}
		re, err := compilePattern(c.Pattern)
		if err != nil {
			return nil, &domain.InvalidConstraintError{Constraint: cc.label, Reason: "pattern does not compile", Err: err}
		}
		cc.re = re

	case domain.ConstraintEnum:
		if len(c.Allowed) == 0 {
			return nil, invalid(c, "allowed set is empty")
		}

	case domain.ConstraintFormat:
		if _, ok := formatCheckers[c.Format]; !ok {
			return nil, invalid(c, "unknown format %q", c.Format)
		}

	case domain.ConstraintReferential:
		keys := c.Keys
		if c.KeySet != "" {
			set, ok := vctx.ParentKeySets[c.KeySet]
			if !ok {
				return nil, invalid(c, "key set %q was not provided", c.KeySet)
			}
			keys = append(append([]domain.Value(nil), set...), keys...)
		} else if len(keys) == 0 {
			return nil, invalid(c, "needs key_set or keys")
		}
		cc.keys = make(map[string]bool, len(keys))
		for _, k := range keys {
			cc.keys[k.Normalized()] = true
		}

	case domain.ConstraintAcyclic:
		if c.KeyField == "" {
			return nil, invalid(c, "key_field is required")
		}
		if c.KeyField == c.Field {
			return nil, invalid(c, "key_field and field must differ")
		}

	case domain.ConstraintCrossField:
		if c.OtherField == "" {
			return nil, invalid(c, "other_field is required")
		}
		cc.op = c.Op
		if cc.op == "" {
			cc.op = domain.OpGe
		}

	case domain.ConstraintBusinessRule:
		r := c.Rule
		if r == nil {
			return nil, invalid(c, "rule is required")
		}
		if r.Predicate == nil {
			if r.Op == "" {
				return nil, invalid(c, "rule %q has no op", r.Name)
			}
			if r.Value == nil && r.OtherField == "" {
				return nil, invalid(c, "rule %q compares against nothing", r.Name)
			}
		}
		if r.When != nil && (r.When.Field == "" || r.When.Op == "") {
			return nil, invalid(c, "rule %q has an incomplete when clause", r.Name)
		}

	case domain.ConstraintAccuracy:
		if c.ExpectedField == "" {
			return nil, invalid(c, "expected_field is required")
		}
		cc.tolerance = DefaultTolerance
		if c.Tolerance != nil {
			if *c.Tolerance < 0 {
				return nil, invalid(c, "tolerance %g is negative", *c.Tolerance)
			}
			cc.tolerance = *c.Tolerance
		}

	case domain.ConstraintTimeliness:
		if c.MaxAge <= 0 {
			return nil, invalid(c, "max_age must be positive")
		}
	}
	return cc, nil
}

// ruleField is the field a business rule reads, falling back to the
// constraint's own field.
func (cc *compiled) ruleField() string {
	if cc.Rule != nil && cc.Rule.Field != "" {
		return cc.Rule.Field
	}
	return cc.Field
}

// dependencies lists every field the constraint reads besides its own.
func (cc *compiled) dependencies() []string {
	var deps []string
	switch cc.Kind {
	case domain.ConstraintUnique:
		deps = append(deps, cc.Fields...)
	case domain.ConstraintCrossField:
		deps = append(deps, cc.OtherField)
	case domain.ConstraintAcyclic:
		deps = append(deps, cc.KeyField)
	case domain.ConstraintAccuracy:
		deps = append(deps, cc.ExpectedField)
	case domain.ConstraintBusinessRule:
		if cc.Rule.Predicate == nil {
			if f := cc.ruleField(); f != cc.Field {
				deps = append(deps, f)
			}
			if cc.Rule.OtherField != "" {
				deps = append(deps, cc.Rule.OtherField)
			}
		}
	}
	return deps
}

var patternFlags = map[rune]string{'i': "i", 'm': "m", 's': "s"}

// compilePattern accepts plain RE2 syntax or a /body/flags literal.
func compilePattern(p string) (*regexp.Regexp, error) {
	if body, flags, ok := splitDelimited(p); ok {
		var goFlags strings.Builder
		for _, f := range flags {
			goFlags.WriteString(patternFlags[f])
		}
		if goFlags.Len() > 0 {
			body = "(?" + goFlags.String() + ")" + body
		}
		p = body
	}
	return regexp.Compile(p)
}

func splitDelimited(p string) (body, flags string, ok bool) {
	if len(p) < 2 || p[0] != '/' {
		return "", "", false
	}
	end := strings.LastIndexByte(p, '/')
	if end == 0 {
		return "", "", false
	}
	flags = p[end+1:]
	if strings.Trim(flags, "imsxuU") != "" {
		return "", "", false
	}
	return p[1:end], flags, true
}
