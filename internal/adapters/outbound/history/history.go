package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/abdidvp/dqscore/internal/domain"
)

// Location of the report log, relative to the dataset directory.
const historyFile = ".dqscore/history/reports.json"

// DefaultLimit is how many reports are retained per directory.
const DefaultLimit = 200

// FileHistory implements domain.ReportHistory as a JSON array next to the
// dataset. Only the newest Limit entries survive a Save.
type FileHistory struct {
	Limit int
}

func New() *FileHistory {
	return &FileHistory{Limit: DefaultLimit}
}

// Save appends entry and rewrites the log through a temporary file so a
// crash never leaves a truncated array behind.
func (h *FileHistory) Save(dir string, entry domain.ReportEntry) error {
	entries, err := h.Load(dir)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if h.Limit > 0 && len(entries) > h.Limit {
		entries = entries[len(entries)-h.Limit:]
	}

	target := filepath.Join(dir, historyFile)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return os.Rename(tmp, target)
}

// Load returns the entries oldest first, or nil when no history exists.
func (h *FileHistory) Load(dir string) ([]domain.ReportEntry, error) {
	raw, err := os.ReadFile(filepath.Join(dir, historyFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var log []domain.ReportEntry
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", historyFile, err)
	}
	return log, nil
}
