package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarityCommand(t *testing.T) {
	out, err := run(t, "similarity", "kitten", "sitting", "--metric", "levenshtein")
	require.NoError(t, err)
	assert.Contains(t, out, "levenshtein")
	assert.Contains(t, out, "0.5714")
}

func TestSimilarityCommand_All(t *testing.T) {
	out, err := run(t, "similarity", "John Smith", "john smith", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "jaro-winkler")
	assert.Contains(t, out, "levenshtein")
	assert.Contains(t, out, "jaccard")
	assert.Contains(t, out, "1.0000")
}

func TestSimilarityCommand_UnknownMetric(t *testing.T) {
	_, err := run(t, "similarity", "a", "b", "--metric", "cosine")
	assert.Error(t, err)
}

func TestDuplicatesCommand(t *testing.T) {
	out, err := run(t, "duplicates", fixture(t), "--ignore", "id,amount", "--field", "email", "--threshold", "0.95")
	require.NoError(t, err)
	assert.Contains(t, out, "Duplicates")
	assert.Contains(t, out, "near duplicates on email")
}

func TestStatsCommand_JSON(t *testing.T) {
	out, err := run(t, "stats", fixture(t), "--fields", "amount", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"field": "amount"`)
	assert.Contains(t, out, `"mean": 25`)
	assert.NotContains(t, out, `"field": "id"`)
}

func TestDriftCommand_RequiresBaseline(t *testing.T) {
	_, err := run(t, "drift", fixture(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baseline save")
}

func TestBaselineThenDrift(t *testing.T) {
	path := fixture(t)

	out, err := run(t, "baseline", "save", path, "--fields", "amount")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved baseline for orders (1 fields)")

	// amount mean 25 → 50
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "email": "a@example.com", "amount": 50}]`), 0644))

	out, err = run(t, "drift", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Distribution drift detected.")

	_, err = run(t, "drift", path, "--ci")
	assert.Error(t, err)

	_, err = run(t, "drift", path, "--ci", "--threshold", "1.5")
	assert.NoError(t, err)

	_, err = run(t, "baseline", "clear", path)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(path), ".dqscore", "baseline.json"))
}

func TestWatchCommandExists(t *testing.T) {
	_, err := run(t, "watch", "--help")
	assert.NoError(t, err)
}
