package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCommand_JSON(t *testing.T) {
	out, err := run(t, "score", fixture(t), "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"overall_score"`)
	assert.Contains(t, out, `"dimensions"`)
	assert.Contains(t, out, `"dataset": "orders"`)
}

func TestScoreCommand_CIFails(t *testing.T) {
	_, err := run(t, "score", fixture(t), "--ci", "--min", "90")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below minimum 90.0")
}

func TestScoreCommand_CIPasses(t *testing.T) {
	_, err := run(t, "score", fixture(t), "--ci", "--min", "50")
	assert.NoError(t, err)
}

func TestScoreCommand_Badge(t *testing.T) {
	out, err := run(t, "score", fixture(t), "--badge")
	require.NoError(t, err)
	assert.Contains(t, out, "img.shields.io")
	assert.Contains(t, out, "72%2F100-yellow")
}

func TestScoreCommand_DefaultTUI(t *testing.T) {
	out, err := run(t, "score", fixture(t))
	require.NoError(t, err)
	assert.Contains(t, out, "dqscore")
	assert.Contains(t, out, "Data Quality Score")
	assert.Contains(t, out, "completeness")
	assert.Contains(t, out, "Recommendations")
}

func TestScoreCommand_SavesHistory(t *testing.T) {
	path := fixture(t)
	_, err := run(t, "score", path, "--json")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(filepath.Dir(path), ".dqscore", "history", "reports.json"))
}

func TestScoreCommand_NoHistory(t *testing.T) {
	path := fixture(t)
	_, err := run(t, "score", path, "--json", "--no-history")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(filepath.Dir(path), ".dqscore"))
}

func TestScoreCommand_MetricsFile(t *testing.T) {
	path := fixture(t)
	metricsFile := filepath.Join(t.TempDir(), "dqscore.prom")

	_, err := run(t, "score", path, "--json", "--metrics-file", metricsFile)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `dqscore_reports_total{dataset="orders",outcome="failed"} 1`)
	assert.Contains(t, string(data), `dqscore_dimension_score{dataset="orders",dimension="completeness"} 75`)
}

func TestScoreCommand_MissingArgument(t *testing.T) {
	_, err := run(t, "score")
	assert.Error(t, err)
}

func TestScoreCommand_BadLogLevel(t *testing.T) {
	_, err := run(t, "score", fixture(t), "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestHistoryCommand(t *testing.T) {
	path := fixture(t)
	for range 2 {
		_, err := run(t, "score", path, "--json")
		require.NoError(t, err)
	}

	out, err := run(t, "history", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Report History")
	assert.Contains(t, out, "Trend")

	out, err = run(t, "history", filepath.Dir(path), "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"entries"`)
	assert.Contains(t, out, `"direction": "stable"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dqscore dev")
}
