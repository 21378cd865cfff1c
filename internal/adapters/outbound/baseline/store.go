package baseline

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/abdidvp/dqscore/internal/domain"
)

// Store is a file-based implementation of domain.BaselineStore.
type Store struct{}

// New creates a new file-based baseline store.
func New() *Store {
	return &Store{}
}

// Load reads the baseline kept under dir. Returns (nil, nil) if none exists.
func (s *Store) Load(dir string) (*domain.Baseline, error) {
	data, err := os.ReadFile(baselinePath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no baseline is not an error
		}
		return nil, err
	}

	var b domain.Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Save writes the baseline under dir, creating directories as needed.
func (s *Store) Save(dir string, b *domain.Baseline) error {
	if err := os.MkdirAll(filepath.Dir(baselinePath(dir)), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(baselinePath(dir), data, 0644)
}

// Invalidate removes the baseline kept under dir.
func (s *Store) Invalidate(dir string) error {
	if err := os.Remove(baselinePath(dir)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func baselinePath(dir string) string {
	return filepath.Join(dir, ".dqscore", "baseline.json")
}
