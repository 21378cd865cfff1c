package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// WeightTolerance bounds how far a weight table may drift from summing to 1.
const WeightTolerance = 1e-6

// QualityConfig holds dataset-level configuration loaded from .dqscore.yaml.
type QualityConfig struct {
	Dataset       string             `yaml:"dataset"                  json:"dataset,omitempty"`
	Weights       map[string]float64 `yaml:"weights,omitempty"        json:"weights,omitempty"`
	Thresholds    map[string]float64 `yaml:"thresholds,omitempty"     json:"thresholds,omitempty"`
	ReferenceTime string             `yaml:"reference_time,omitempty" json:"reference_time,omitempty"`
	KeySets       map[string][]any   `yaml:"key_sets,omitempty"       json:"key_sets,omitempty"`
	Constraints   []ConstraintSpec   `yaml:"constraints,omitempty"    json:"constraints,omitempty" validate:"dive"`
}

// ConstraintSpec is the YAML form of a FieldConstraint. Kind-specific
// parameters arrive as loose scalars and are coerced by ToConstraint.
type ConstraintSpec struct {
	Name          string         `yaml:"name,omitempty"           json:"name,omitempty"`
	Field         string         `yaml:"field"                    json:"field" validate:"required"`
	Kind          string         `yaml:"kind"                     json:"kind" validate:"required,oneof=required type range length pattern enum format unique referential cross_field business_rule accuracy consistency timeliness acyclic"`
	Nullable      bool           `yaml:"nullable,omitempty"       json:"nullable,omitempty"`
	Dimension     string         `yaml:"dimension,omitempty"      json:"dimension,omitempty" validate:"omitempty,oneof=completeness accuracy consistency timeliness validity uniqueness integrity"`
	Min           any            `yaml:"min,omitempty"            json:"min,omitempty"`
	Max           any            `yaml:"max,omitempty"            json:"max,omitempty"`
	DataType      string         `yaml:"data_type,omitempty"      json:"data_type,omitempty" validate:"omitempty,oneof=integer float string boolean"`
	Pattern       string         `yaml:"pattern,omitempty"        json:"pattern,omitempty"`
	Allowed       []any          `yaml:"allowed,omitempty"        json:"allowed,omitempty"`
	Format        string         `yaml:"format,omitempty"         json:"format,omitempty" validate:"omitempty,oneof=email phone url date"`
	Fields        []string       `yaml:"fields,omitempty"         json:"fields,omitempty"`
	KeySet        string         `yaml:"key_set,omitempty"        json:"key_set,omitempty"`
	KeyField      string         `yaml:"key_field,omitempty"      json:"key_field,omitempty"`
	Keys          []any          `yaml:"keys,omitempty"           json:"keys,omitempty"`
	OtherField    string         `yaml:"other_field,omitempty"    json:"other_field,omitempty"`
	Op            string         `yaml:"op,omitempty"             json:"op,omitempty"`
	Rule          *RuleSpec      `yaml:"rule,omitempty"           json:"rule,omitempty"`
	ExpectedField string         `yaml:"expected_field,omitempty" json:"expected_field,omitempty"`
	Tolerance     any            `yaml:"tolerance,omitempty"      json:"tolerance,omitempty"`
	MaxAge        string         `yaml:"max_age,omitempty"        json:"max_age,omitempty"`
}

// RuleSpec is the YAML form of a BusinessRule.
type RuleSpec struct {
	Name       string         `yaml:"name"                  json:"name" validate:"required"`
	Field      string         `yaml:"field,omitempty"       json:"field,omitempty"`
	Op         string         `yaml:"op"                    json:"op" validate:"required"`
	Value      any            `yaml:"value,omitempty"       json:"value,omitempty"`
	OtherField string         `yaml:"other_field,omitempty" json:"other_field,omitempty"`
	When       *ConditionSpec `yaml:"when,omitempty"        json:"when,omitempty"`
}

// ConditionSpec is the YAML form of a Condition.
type ConditionSpec struct {
	Field string `yaml:"field" json:"field" validate:"required"`
	Op    string `yaml:"op"    json:"op" validate:"required"`
	Value any    `yaml:"value" json:"value"`
}

var configValidate = validator.New()

// DefaultConfig returns an empty config: equal weights, default thresholds,
// no constraints.
func DefaultConfig() QualityConfig {
	return QualityConfig{}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c QualityConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return configErrorf(fe.Namespace(), "failed %q validation (got %v)", fe.Tag(), fe.Value())
		}
		return &ConfigError{Reason: err.Error()}
	}

	if _, err := c.WeightTable(); err != nil {
		return err
	}
	if _, err := c.ThresholdTable(); err != nil {
		return err
	}

	if c.ReferenceTime != "" {
		if _, err := c.ParsedReferenceTime(); err != nil {
			return err
		}
	}

	for i, spec := range c.Constraints {
		if _, err := spec.ToConstraint(); err != nil {
			return fmt.Errorf("constraints[%d]: %w", i, err)
		}
	}
	return nil
}

// WeightTable converts the weights map into dimension keys. A non-empty
// table must sum to 1.0 within WeightTolerance.
func (c QualityConfig) WeightTable() (map[Dimension]float64, error) {
	if len(c.Weights) == 0 {
		return nil, nil
	}
	out := make(map[Dimension]float64, len(c.Weights))
	sum := 0.0
	for k, w := range c.Weights {
		d, ok := ParseDimension(k)
		if !ok {
			return nil, configErrorf("weights", "unknown dimension %q", k)
		}
		if w < 0 {
			return nil, configErrorf("weights", "%s weight is negative (%g)", k, w)
		}
		out[d] = w
		sum += w
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return nil, configErrorf("weights", "weights sum to %g (must be 1.0)", sum)
	}
	return out, nil
}

// ThresholdTable converts the thresholds map into dimension keys.
func (c QualityConfig) ThresholdTable() (map[Dimension]float64, error) {
	if len(c.Thresholds) == 0 {
		return nil, nil
	}
	out := make(map[Dimension]float64, len(c.Thresholds))
	for k, t := range c.Thresholds {
		d, ok := ParseDimension(k)
		if !ok {
			return nil, configErrorf("thresholds", "unknown dimension %q", k)
		}
		if t < 0 || t > 100 {
			return nil, configErrorf("thresholds", "%s = %g (must be between 0 and 100)", k, t)
		}
		out[d] = t
	}
	return out, nil
}

// ParsedReferenceTime returns the configured reference time, or the zero
// time when unset.
func (c QualityConfig) ParsedReferenceTime() (time.Time, error) {
	if c.ReferenceTime == "" {
		return time.Time{}, nil
	}
	t, err := cast.ToTimeE(c.ReferenceTime)
	if err != nil {
		return time.Time{}, configErrorf("reference_time", "cannot parse %q", c.ReferenceTime)
	}
	return t, nil
}

// KeySetValues converts the configured parent key sets into Values.
func (c QualityConfig) KeySetValues() map[string][]Value {
	if len(c.KeySets) == 0 {
		return nil
	}
	out := make(map[string][]Value, len(c.KeySets))
	for name, keys := range c.KeySets {
		out[name] = valuesOf(keys)
	}
	return out
}

// FieldConstraints converts every configured entry into a FieldConstraint.
func (c QualityConfig) FieldConstraints() ([]FieldConstraint, error) {
	out := make([]FieldConstraint, 0, len(c.Constraints))
	for i, spec := range c.Constraints {
		fc, err := spec.ToConstraint()
		if err != nil {
			return nil, fmt.Errorf("constraints[%d]: %w", i, err)
		}
		out = append(out, fc)
	}
	return out, nil
}

// ToConstraint coerces the loose YAML parameters into a FieldConstraint.
func (s ConstraintSpec) ToConstraint() (FieldConstraint, error) {
	fc := FieldConstraint{
		Name:          s.Name,
		Field:         s.Field,
		Kind:          ConstraintKind(s.Kind),
		Nullable:      s.Nullable,
		Dimension:     Dimension(s.Dimension),
		DataType:      DataType(s.DataType),
		Pattern:       s.Pattern,
		Format:        Format(s.Format),
		Fields:        s.Fields,
		KeySet:        s.KeySet,
		KeyField:      s.KeyField,
		OtherField:    s.OtherField,
		ExpectedField: s.ExpectedField,
	}
	label := fc.Label()

	var err error
	if fc.Min, err = optionalFloat(s.Min); err != nil {
		return fc, &InvalidConstraintError{Constraint: label, Reason: "min is not numeric", Err: err}
	}
	if fc.Max, err = optionalFloat(s.Max); err != nil {
		return fc, &InvalidConstraintError{Constraint: label, Reason: "max is not numeric", Err: err}
	}
	if fc.Tolerance, err = optionalFloat(s.Tolerance); err != nil {
		return fc, &InvalidConstraintError{Constraint: label, Reason: "tolerance is not numeric", Err: err}
	}

	if s.MaxAge != "" {
		if fc.MaxAge, err = cast.ToDurationE(s.MaxAge); err != nil {
			return fc, &InvalidConstraintError{Constraint: label, Reason: "max_age is not a duration", Err: err}
		}
	}

	if s.Op != "" {
		op, ok := ParseCompareOp(strings.ToLower(s.Op))
		if !ok {
			return fc, &InvalidConstraintError{Constraint: label, Reason: fmt.Sprintf("unknown op %q", s.Op)}
		}
		fc.Op = op
	}

	fc.Allowed = valuesOf(s.Allowed)
	fc.Keys = valuesOf(s.Keys)

	if s.Rule != nil {
		rule, err := s.Rule.toRule()
		if err != nil {
			return fc, &InvalidConstraintError{Constraint: label, Reason: "rule", Err: err}
		}
		fc.Rule = rule
	}

	return fc, nil
}

func (r RuleSpec) toRule() (*BusinessRule, error) {
	op, ok := ParseCompareOp(strings.ToLower(r.Op))
	if !ok {
		return nil, fmt.Errorf("unknown op %q", r.Op)
	}
	rule := &BusinessRule{
		Name:       r.Name,
		Field:      r.Field,
		Op:         op,
		OtherField: r.OtherField,
	}
	if r.Value != nil {
		v := FromAny(r.Value)
		rule.Value = &v
	}
	if r.When != nil {
		wop, ok := ParseCompareOp(strings.ToLower(r.When.Op))
		if !ok {
			return nil, fmt.Errorf("unknown when op %q", r.When.Op)
		}
		rule.When = &Condition{Field: r.When.Field, Op: wop, Value: FromAny(r.When.Value)}
	}
	return rule, nil
}

func optionalFloat(v any) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func valuesOf(items []any) []Value {
	if len(items) == 0 {
		return nil
	}
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = FromAny(item)
	}
	return out
}
