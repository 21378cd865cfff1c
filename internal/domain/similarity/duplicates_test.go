package similarity_test

import (
	"testing"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/abdidvp/dqscore/internal/domain/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companies() domain.Batch {
	names := []any{"Apple Inc", "Banana Republic", "apple inc.", nil, "APPLE INC"}
	batch := make(domain.Batch, len(names))
	for i, n := range names {
		batch[i] = domain.RecordFromMap(map[string]any{"id": i + 1, "name": n})
	}
	return batch
}

func TestNearDuplicates(t *testing.T) {
	pairs, err := similarity.NearDuplicates(companies(), "name", 0.9, similarity.MetricJaroWinkler)
	require.NoError(t, err)

	got := make([][2]int, len(pairs))
	for i, p := range pairs {
		got[i] = [2]int{p.First, p.Second}
		assert.GreaterOrEqual(t, p.Similarity, 0.9)
	}
	assert.Equal(t, [][2]int{{0, 2}, {0, 4}, {2, 4}}, got)
}

func TestNearDuplicates_Errors(t *testing.T) {
	_, err := similarity.NearDuplicates(nil, "name", 0.9, similarity.MetricJaroWinkler)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)

	_, err = similarity.NearDuplicates(companies(), "name", 1.5, similarity.MetricJaroWinkler)
	assert.Error(t, err)
}

func TestExactDuplicates_IgnoresID(t *testing.T) {
	batch := domain.Batch{
		domain.RecordFromMap(map[string]any{"id": 1, "sku": "A-1", "qty": 2}),
		domain.RecordFromMap(map[string]any{"id": 2, "sku": "B-7", "qty": 1}),
		domain.RecordFromMap(map[string]any{"id": 3, "qty": 2, "sku": "A-1"}),
		domain.RecordFromMap(map[string]any{"id": 4, "sku": "A-1", "qty": 2.5}),
	}

	assert.Equal(t, map[int]int{2: 0}, similarity.ExactDuplicates(batch, "id"))
	assert.Empty(t, similarity.ExactDuplicates(batch))
}
