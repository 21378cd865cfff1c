package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch is returned when an operation needs at least one record.
var ErrEmptyBatch = errors.New("empty batch: at least one record is required")

// ConfigError reports a malformed weight table, threshold map, or other
// report-level setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config: " + e.Reason
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// InvalidConstraintError reports a FieldConstraint that cannot be evaluated,
// such as a range without bounds or a pattern that does not compile.
type InvalidConstraintError struct {
	Constraint string
	Reason     string
	Err        error
}

func (e *InvalidConstraintError) Error() string {
	msg := fmt.Sprintf("invalid constraint %s: %s", e.Constraint, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidConstraintError) Unwrap() error { return e.Err }

// MissingFieldError reports a field that a constraint depends on but that
// no record in the batch carries.
type MissingFieldError struct {
	Field      string
	Constraint string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %q required by %s is absent from every record", e.Field, e.Constraint)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
