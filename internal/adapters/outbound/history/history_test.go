package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/history"
	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.ReportEntry{
		ID:         "r-1",
		Timestamp:  "2026-02-25T10:00:00Z",
		CommitHash: "abc1234",
		Overall:    47.5,
		Grade:      "D",
		Records:    120,
		Dimensions: map[string]float64{"completeness": 47.5},
	}

	require.NoError(t, h.Save(dir, entry))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
}

func TestHistory_AppendMultiple(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.ReportEntry{Timestamp: "t1", Overall: 47, Grade: "D"}))
	require.NoError(t, h.Save(dir, domain.ReportEntry{Timestamp: "t2", Overall: 62, Grade: "C"}))
	require.NoError(t, h.Save(dir, domain.ReportEntry{Timestamp: "t3", Overall: 85, Grade: "A"}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 47.0, entries[0].Overall)
	assert.Equal(t, 85.0, entries[2].Overall)
}

func TestHistory_LoadEmpty(t *testing.T) {
	entries, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestHistory_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".dqscore", "history", "reports.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("{not json"), 0644))

	_, err := history.New().Load(dir)
	assert.Error(t, err)
}

func TestHistory_KeepsNewestEntries(t *testing.T) {
	dir := t.TempDir()
	h := &history.FileHistory{Limit: 2}

	for _, score := range []float64{40, 50, 60} {
		require.NoError(t, h.Save(dir, domain.ReportEntry{Overall: score}))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 50.0, entries[0].Overall)
	assert.Equal(t, 60.0, entries[1].Overall)
	assert.NoFileExists(t, filepath.Join(dir, ".dqscore", "history", "reports.json.tmp"))
}
