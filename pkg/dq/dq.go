// Package dq is the library entry point of dqscore: validate a batch of
// records against field constraints, score quality dimensions and build a
// weighted quality report.
//
//	batch := dq.Batch{dq.RecordFromMap(map[string]any{"email": "a@example.com"})}
//	report, err := dq.GenerateReport(batch, []dq.FieldConstraint{
//		{Field: "email", Kind: dq.ConstraintRequired},
//		{Field: "email", Kind: dq.ConstraintFormat, Format: dq.FormatEmail},
//	}, dq.Options{})
package dq

import (
	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/abdidvp/dqscore/internal/domain/scoring"
	"github.com/abdidvp/dqscore/internal/domain/similarity"
	"github.com/abdidvp/dqscore/internal/domain/validation"
)

type (
	Value            = domain.Value
	Field            = domain.Field
	Record           = domain.Record
	Batch            = domain.Batch
	Dimension        = domain.Dimension
	ConstraintKind   = domain.ConstraintKind
	FieldConstraint  = domain.FieldConstraint
	BusinessRule     = domain.BusinessRule
	Condition        = domain.Condition
	ValidationResult = domain.ValidationResult
	DimensionScore   = domain.DimensionScore
	QualityReport    = domain.QualityReport
	QualityConfig    = domain.QualityConfig

	ConfigError            = domain.ConfigError
	InvalidConstraintError = domain.InvalidConstraintError
	MissingFieldError      = domain.MissingFieldError

	// Context carries parent key sets, the reference time and the worker
	// bound for a validation run.
	Context = validation.Context
	// Options configures GenerateReport.
	Options = scoring.Options
)

const (
	Completeness = domain.Completeness
	Accuracy     = domain.Accuracy
	Consistency  = domain.Consistency
	Timeliness   = domain.Timeliness
	Validity     = domain.Validity
	Uniqueness   = domain.Uniqueness
	Integrity    = domain.Integrity

	ConstraintRequired     = domain.ConstraintRequired
	ConstraintType         = domain.ConstraintType
	ConstraintRange        = domain.ConstraintRange
	ConstraintLength       = domain.ConstraintLength
	ConstraintPattern      = domain.ConstraintPattern
	ConstraintEnum         = domain.ConstraintEnum
	ConstraintFormat       = domain.ConstraintFormat
	ConstraintUnique       = domain.ConstraintUnique
	ConstraintReferential  = domain.ConstraintReferential
	ConstraintCrossField   = domain.ConstraintCrossField
	ConstraintBusinessRule = domain.ConstraintBusinessRule
	ConstraintAccuracy     = domain.ConstraintAccuracy
	ConstraintConsistency  = domain.ConstraintConsistency
	ConstraintTimeliness   = domain.ConstraintTimeliness
	ConstraintAcyclic      = domain.ConstraintAcyclic

	FormatEmail = domain.FormatEmail
	FormatPhone = domain.FormatPhone
	FormatURL   = domain.FormatURL
	FormatDate  = domain.FormatDate
)

// ErrEmptyBatch is returned when an operation needs at least one record.
var ErrEmptyBatch = domain.ErrEmptyBatch

// NewRecord builds a record from fields in order.
func NewRecord(fields ...Field) Record { return domain.NewRecord(fields...) }

// RecordFromMap builds a record from a plain map, ordering fields by name.
func RecordFromMap(m map[string]any) Record { return domain.RecordFromMap(m) }

// FromAny converts a decoded JSON or YAML value.
func FromAny(v any) Value { return domain.FromAny(v) }

// ValidateBatch returns one result per (record, constraint) pair in
// record-major order.
func ValidateBatch(batch Batch, constraints []FieldConstraint, ctx Context) ([]ValidationResult, error) {
	return validation.ValidateBatch(batch, constraints, ctx)
}

// ScoreDimension aggregates the results belonging to dim.
func ScoreDimension(results []ValidationResult, dim Dimension) (DimensionScore, error) {
	return scoring.ScoreDimension(results, dim)
}

// GenerateReport validates, scores and weights in one call.
func GenerateReport(batch Batch, constraints []FieldConstraint, opts Options) (*QualityReport, error) {
	return scoring.GenerateReport(batch, constraints, opts)
}

// StringSimilarity is the normalized Jaro-Winkler similarity of a and b.
func StringSimilarity(a, b string) float64 { return similarity.StringSimilarity(a, b) }
