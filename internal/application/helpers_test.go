package application_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/abdidvp/dqscore/internal/domain"
	"github.com/stretchr/testify/require"
)

const ordersJSON = `[
  {"id": 1, "email": "a@example.com", "amount": 10},
  {"id": 2, "email": "bad", "amount": 20},
  {"id": 3, "email": null, "amount": 30},
  {"id": 3, "email": "d@example.com", "amount": 40}
]`

const ordersConfig = `dataset: orders
constraints:
  - field: email
    kind: required
  - field: email
    kind: format
    format: email
    nullable: true
  - field: id
    kind: unique
`

// writeDataset lays out records and config in a fresh directory and
// returns the records path.
func writeDataset(t *testing.T, name, records, config string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(records), 0644))
	if config != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".dqscore.yaml"), []byte(config), 0644))
	}
	return path
}

func fixedClock() func() time.Time {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

type fakeRecorder struct {
	mu       sync.Mutex
	reports  []*domain.QualityReport
	failures []string
}

func (f *fakeRecorder) ObserveReport(r *domain.QualityReport, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, r)
}

func (f *fakeRecorder) ObserveFailure(stage string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, stage)
}
