// Package watcher re-runs a callback when any of a set of files changes.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher watches individual files. It watches their parent
// directories so that editors which save by rename are still seen.
type FileWatcher struct {
	files    map[string]bool
	debounce time.Duration
	logger   *slog.Logger
}

// New watches files, which must be non-empty. A zero debounce uses
// DefaultDebounce.
func New(files []string, debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fw := &FileWatcher{files: make(map[string]bool, len(files)), debounce: debounce, logger: logger}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		fw.files[abs] = true
	}
	return fw, nil
}

// Watch blocks until ctx is cancelled, calling onChange after each
// debounced burst of writes to a watched file. Calls never overlap, and
// Watch returns only after any running call has finished. Callback errors
// are logged and watching continues.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer w.Close()

	dirs := make(map[string]bool)
	for f := range fw.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}
	fw.logger.Info("watching for changes", "files", len(fw.files), "debounce_ms", fw.debounce.Milliseconds())

	runCtx, cancel := context.WithCancel(ctx)
	var runner sync.WaitGroup
	// cancel runs before the runner is awaited.
	defer runner.Wait()
	defer cancel()

	// A single runner owns onChange. Bursts that land while it is busy
	// collapse into one pending re-run.
	pending := make(chan struct{}, 1)
	runner.Add(1)
	go func() {
		defer runner.Done()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-pending:
				if runCtx.Err() != nil {
					return
				}
				if err := onChange(); err != nil {
					fw.logger.Error("re-run failed", "error", err)
				}
			}
		}
	}()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !fw.relevant(event) {
				continue
			}
			fw.logger.Debug("file event", "path", event.Name, "op", event.Op.String())

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(fw.debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) relevant(e fsnotify.Event) bool {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) && !e.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(e.Name)
	if err != nil {
		return false
	}
	return fw.files[abs]
}
