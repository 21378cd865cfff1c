package domain

import (
	"math"
	"time"
)

// Dimension is a named axis of data quality.
type Dimension string

const (
	Completeness Dimension = "completeness"
	Accuracy     Dimension = "accuracy"
	Consistency  Dimension = "consistency"
	Timeliness   Dimension = "timeliness"
	Validity     Dimension = "validity"
	Uniqueness   Dimension = "uniqueness"
	Integrity    Dimension = "integrity"
)

// AllDimensions lists every dimension in report order.
var AllDimensions = []Dimension{
	Completeness, Accuracy, Consistency, Timeliness, Validity, Uniqueness, Integrity,
}

// ParseDimension resolves a dimension name.
func ParseDimension(s string) (Dimension, bool) {
	for _, d := range AllDimensions {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// DefaultThreshold is the score below which a dimension gets a recommendation.
const DefaultThreshold = 90.0

// ValidationResult is the outcome of one constraint against one record.
type ValidationResult struct {
	Record     int            `json:"record"`
	Field      string         `json:"field"`
	Constraint string         `json:"constraint"`
	Kind       ConstraintKind `json:"kind"`
	Dimension  Dimension      `json:"dimension"`
	Passed     bool           `json:"passed"`
	Skipped    bool           `json:"skipped,omitempty"`
	Expected   string         `json:"expected,omitempty"`
	Actual     string         `json:"actual,omitempty"`
	Message    string         `json:"message,omitempty"`
}

// FieldScore is the pass rate of one field within a dimension.
type FieldScore struct {
	Field      string  `json:"field"`
	Passed     int     `json:"passed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// DimensionScore aggregates the results that belong to one dimension.
type DimensionScore struct {
	Dimension  Dimension          `json:"dimension"`
	Percentage float64            `json:"percentage"`
	Passed     int                `json:"passed"`
	Failed     int                `json:"failed"`
	Total      int                `json:"total"`
	Weight     float64            `json:"weight"`
	Threshold  float64            `json:"threshold"`
	Fields     []FieldScore       `json:"fields,omitempty"`
	Results    []ValidationResult `json:"results,omitempty"`
}

// BelowThreshold reports whether the dimension needs attention.
func (d DimensionScore) BelowThreshold() bool { return d.Percentage < d.Threshold }

// FieldMetric profiles one field across the batch.
type FieldMetric struct {
	Field         string  `json:"field"`
	Completeness  float64 `json:"completeness"`
	NullCount     int     `json:"null_count"`
	DistinctCount int     `json:"distinct_count"`
}

// Benchmark compares the overall score against an industry average.
type Benchmark struct {
	IndustryAverage float64 `json:"industry_average"`
	Gap             float64 `json:"performance_gap"`
	Level           string  `json:"performance_level"`
}

const (
	LevelExcellent    = "excellent"
	LevelAboveAverage = "above_average"
	LevelAverage      = "average"
	LevelBelowAverage = "below_average"
)

// IndustryAverage is the reference score used by BenchmarkFor.
const IndustryAverage = 85.0

// BenchmarkFor classifies a score against IndustryAverage.
func BenchmarkFor(score float64) Benchmark {
	gap := score - IndustryAverage
	level := LevelBelowAverage
	switch {
	case gap > 10:
		level = LevelExcellent
	case gap > 5:
		level = LevelAboveAverage
	case gap > -5:
		level = LevelAverage
	}
	return Benchmark{IndustryAverage: IndustryAverage, Gap: gap, Level: level}
}

// QualityReport is the weighted composite of every scored dimension.
type QualityReport struct {
	ID              string                `json:"id"`
	Dataset         string                `json:"dataset,omitempty"`
	OverallScore    float64               `json:"overall_score"`
	Grade           string                `json:"grade"`
	Passed          bool                  `json:"passed"`
	RecordCount     int                   `json:"record_count"`
	Dimensions      []DimensionScore      `json:"dimensions"`
	Recommendations []string              `json:"recommendations"`
	FieldMetrics    []FieldMetric         `json:"field_metrics,omitempty"`
	Benchmark       Benchmark             `json:"benchmark"`
	Weights         map[Dimension]float64 `json:"weights"`
	Thresholds      map[Dimension]float64 `json:"thresholds"`
	CommitHash      string                `json:"commit_hash,omitempty"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// Dimension returns the score for d, if it was scored.
func (r *QualityReport) Dimension(d Dimension) (DimensionScore, bool) {
	for _, ds := range r.Dimensions {
		if ds.Dimension == d {
			return ds, true
		}
	}
	return DimensionScore{}, false
}

// GradeFor maps a 0-100 score to a letter grade.
func GradeFor(score float64) string {
	s := int(math.Round(score))
	switch {
	case s >= 90:
		return "A+"
	case s >= 80:
		return "A"
	case s >= 70:
		return "B"
	case s >= 60:
		return "C"
	case s >= 50:
		return "D"
	default:
		return "F"
	}
}

// BadgeColor maps a score to a shields.io color.
func BadgeColor(score float64) string {
	s := int(math.Round(score))
	switch {
	case s >= 90:
		return "brightgreen"
	case s >= 80:
		return "green"
	case s >= 70:
		return "yellow"
	case s >= 60:
		return "orange"
	case s >= 50:
		return "red"
	default:
		return "critical"
	}
}
