package domain_test

import (
	"testing"
	"time"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEntryFor(t *testing.T) {
	report := &domain.QualityReport{
		ID:           "r-1",
		Dataset:      "orders",
		OverallScore: 87.5,
		Grade:        "A",
		RecordCount:  40,
		CommitHash:   "abc123",
		GeneratedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Dimensions: []domain.DimensionScore{
			{Dimension: domain.Completeness, Percentage: 100},
			{Dimension: domain.Validity, Percentage: 75},
		},
	}

	e := domain.EntryFor(report)
	assert.Equal(t, "r-1", e.ID)
	assert.Equal(t, "2024-06-01T12:00:00Z", e.Timestamp)
	assert.Equal(t, 87.5, e.Overall)
	assert.Equal(t, 40, e.Records)
	assert.Equal(t, map[string]float64{"completeness": 100, "validity": 75}, e.Dimensions)
}
