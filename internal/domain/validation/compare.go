package validation

import (
	"cmp"
	"strings"
	"time"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/spf13/cast"
)

// parseTime reads a timestamp from a string value in any layout cast
// understands.
func parseTime(v domain.Value) (time.Time, bool) {
	s, ok := v.Str()
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := cast.ToTimeE(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// clockLayouts are the time-of-day forms compared when neither side is a
// full timestamp. Hours may omit the leading zero.
var clockLayouts = []string{"15:04", "15:04:05", time.Kitchen, "3:04 PM", "3:04:05 PM", "3:04:05PM"}

// parseClock reads a bare time of day such as "9:00", "17:30:15" or
// "5:00 pm" as a duration since midnight.
func parseClock(v domain.Value) (time.Duration, bool) {
	s, ok := v.Str()
	if !ok {
		return 0, false
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

// compareValues orders two scalars: numerically when both are numbers,
// chronologically when both parse as timestamps or as times of day, else
// by their text.
func compareValues(a, b domain.Value) (int, bool) {
	if !a.IsScalar() || !b.IsScalar() || a.IsNull() || b.IsNull() {
		return 0, false
	}
	if af, ok := a.Float(); ok {
		if bf, ok := b.Float(); ok {
			return cmp.Compare(af, bf), true
		}
	}
	if at, ok := parseTime(a); ok {
		if bt, ok := parseTime(b); ok {
			return at.Compare(bt), true
		}
	}
	if ac, ok := parseClock(a); ok {
		if bc, ok := parseClock(b); ok {
			return cmp.Compare(ac, bc), true
		}
	}
	return cmp.Compare(a.Text(), b.Text()), true
}

// evalOp reports whether a op b holds. Equality falls back to Value.Equal
// for values without an order.
func evalOp(op domain.CompareOp, a, b domain.Value) bool {
	c, ok := compareValues(a, b)
	if !ok {
		switch op {
		case domain.OpEq:
			return a.Equal(b)
		case domain.OpNe:
			return !a.Equal(b)
		}
		return false
	}
	switch op {
	case domain.OpEq:
		return c == 0
	case domain.OpNe:
		return c != 0
	case domain.OpLt:
		return c < 0
	case domain.OpLe:
		return c <= 0
	case domain.OpGt:
		return c > 0
	case domain.OpGe:
		return c >= 0
	}
	return false
}
