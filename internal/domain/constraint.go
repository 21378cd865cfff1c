package domain

import (
	"fmt"
	"time"
)

// ConstraintKind names the check a FieldConstraint performs.
type ConstraintKind string

const (
	ConstraintRequired     ConstraintKind = "required"
	ConstraintType         ConstraintKind = "type"
	ConstraintRange        ConstraintKind = "range"
	ConstraintLength       ConstraintKind = "length"
	ConstraintPattern      ConstraintKind = "pattern"
	ConstraintEnum         ConstraintKind = "enum"
	ConstraintFormat       ConstraintKind = "format"
	ConstraintUnique       ConstraintKind = "unique"
	ConstraintReferential  ConstraintKind = "referential"
	ConstraintCrossField   ConstraintKind = "cross_field"
	ConstraintBusinessRule ConstraintKind = "business_rule"
	ConstraintAccuracy     ConstraintKind = "accuracy"
	ConstraintConsistency  ConstraintKind = "consistency"
	ConstraintTimeliness   ConstraintKind = "timeliness"
	ConstraintAcyclic      ConstraintKind = "acyclic"
)

// ConstraintKinds lists every supported kind.
var ConstraintKinds = []ConstraintKind{
	ConstraintRequired, ConstraintType, ConstraintRange, ConstraintLength,
	ConstraintPattern, ConstraintEnum, ConstraintFormat, ConstraintUnique,
	ConstraintReferential, ConstraintCrossField, ConstraintBusinessRule,
	ConstraintAccuracy, ConstraintConsistency, ConstraintTimeliness,
	ConstraintAcyclic,
}

var kindDimensions = map[ConstraintKind]Dimension{
	ConstraintRequired:     Completeness,
	ConstraintType:         Validity,
	ConstraintRange:        Validity,
	ConstraintLength:       Validity,
	ConstraintPattern:      Validity,
	ConstraintEnum:         Validity,
	ConstraintFormat:       Validity,
	ConstraintBusinessRule: Validity,
	ConstraintUnique:       Uniqueness,
	ConstraintReferential:  Integrity,
	ConstraintAcyclic:      Integrity,
	ConstraintCrossField:   Consistency,
	ConstraintConsistency:  Consistency,
	ConstraintAccuracy:     Accuracy,
	ConstraintTimeliness:   Timeliness,
}

// DimensionOf returns the dimension a kind contributes to by default.
func DimensionOf(k ConstraintKind) (Dimension, bool) {
	d, ok := kindDimensions[k]
	return d, ok
}

// DataType is the declared runtime type for a type constraint.
type DataType string

const (
	TypeInteger DataType = "integer"
	TypeFloat   DataType = "float"
	TypeString  DataType = "string"
	TypeBoolean DataType = "boolean"
)

// Format names a well-known string format.
type Format string

const (
	FormatEmail Format = "email"
	FormatPhone Format = "phone"
	FormatURL   Format = "url"
	FormatDate  Format = "date"
)

// CompareOp is an ordering or equality relation between two values.
type CompareOp string

const (
	OpEq CompareOp = "eq"
	OpNe CompareOp = "ne"
	OpLt CompareOp = "lt"
	OpLe CompareOp = "le"
	OpGt CompareOp = "gt"
	OpGe CompareOp = "ge"
)

var opAliases = map[string]CompareOp{
	"eq": OpEq, "==": OpEq, "=": OpEq,
	"ne": OpNe, "!=": OpNe, "<>": OpNe,
	"lt": OpLt, "<": OpLt,
	"le": OpLe, "<=": OpLe, "lte": OpLe,
	"gt": OpGt, ">": OpGt,
	"ge": OpGe, ">=": OpGe, "gte": OpGe,
}

// ParseCompareOp accepts both names ("ge") and symbols (">=").
func ParseCompareOp(s string) (CompareOp, bool) {
	op, ok := opAliases[s]
	return op, ok
}

// Condition is a single comparison of a field against a literal.
type Condition struct {
	Field string    `json:"field"`
	Op    CompareOp `json:"op"`
	Value Value     `json:"value"`
}

// BusinessRule is a named predicate over one or more fields. Either
// Predicate is set, or Field Op (Value | OtherField) is evaluated, gated by
// an optional When condition.
type BusinessRule struct {
	Name       string            `json:"name"`
	Field      string            `json:"field,omitempty"`
	Op         CompareOp         `json:"op,omitempty"`
	Value      *Value            `json:"value,omitempty"`
	OtherField string            `json:"other_field,omitempty"`
	When       *Condition        `json:"when,omitempty"`
	Predicate  func(Record) bool `json:"-"`
}

// FieldConstraint is one declarative check against one field. Constraints
// carry no per-run state and may be reused across validation calls.
type FieldConstraint struct {
	Name      string         `json:"name,omitempty"`
	Field     string         `json:"field"`
	Kind      ConstraintKind `json:"kind"`
	Nullable  bool           `json:"nullable,omitempty"`
	Dimension Dimension      `json:"dimension,omitempty"`

	// range and length
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	DataType DataType `json:"data_type,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
	Allowed  []Value  `json:"allowed,omitempty"`
	Format   Format   `json:"format,omitempty"`

	// unique: additional fields forming a composite key
	Fields []string `json:"fields,omitempty"`

	// referential: a named parent key set from the validation context, or
	// inline keys
	KeySet string  `json:"key_set,omitempty"`
	Keys   []Value `json:"keys,omitempty"`

	// acyclic: Field holds the parent's KeyField value
	KeyField string `json:"key_field,omitempty"`

	// cross_field: Field Op OtherField, Op defaults to ge
	OtherField string    `json:"other_field,omitempty"`
	Op         CompareOp `json:"op,omitempty"`

	Rule *BusinessRule `json:"rule,omitempty"`

	// accuracy
	ExpectedField string   `json:"expected_field,omitempty"`
	Tolerance     *float64 `json:"tolerance,omitempty"`

	// timeliness
	MaxAge time.Duration `json:"max_age,omitempty"`
}

// Label identifies the constraint in results and errors.
func (c FieldConstraint) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%s(%s)", c.Kind, c.Field)
}

// EffectiveDimension is the explicit override or the kind's default.
func (c FieldConstraint) EffectiveDimension() Dimension {
	if c.Dimension != "" {
		return c.Dimension
	}
	d, _ := DimensionOf(c.Kind)
	return d
}

// Float64 returns a pointer to f, for optional constraint bounds.
func Float64(f float64) *float64 { return &f }
