// Package scanner finds scoreable datasets under a directory tree.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/config"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	".dqscore":     true,
	"dist":         true,
	"bin":          true,
}

var datasetExts = map[string]bool{
	".json":   true,
	".jsonl":  true,
	".ndjson": true,
	".csv":    true,
}

// FileScanner implements domain.DatasetScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan returns, in lexical order, every record file under root that sits
// next to a .dqscore.yaml. Directories named in excludeDirs are skipped
// along with the built-in ones.
func (s *FileScanner) Scan(root string, excludeDirs ...string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	extraSkip := make(map[string]bool, len(excludeDirs))
	for _, p := range excludeDirs {
		extraSkip[strings.TrimSuffix(p, "/")] = true
	}

	configured := make(map[string]bool)
	var found []string

	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != absRoot && (skipDirs[d.Name()] || extraSkip[d.Name()]) {
				return filepath.SkipDir
			}
			if _, err := os.Stat(filepath.Join(path, config.FileName)); err == nil {
				configured[path] = true
			}
			return nil
		}

		if !datasetExts[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		if configured[filepath.Dir(path)] {
			found = append(found, path)
		}
		return nil
	})

	return found, err
}
