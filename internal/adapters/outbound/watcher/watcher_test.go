package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abdidvp/dqscore/internal/adapters/outbound/logging"
	"github.com/abdidvp/dqscore/internal/adapters/outbound/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresFiles(t *testing.T) {
	_, err := watcher.New(nil, 0, nil)
	assert.Error(t, err)
}

func TestWatch_CallsBackOnWrite(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "orders.json")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(data, []byte("[]"), 0644))

	fw, err := watcher.New([]string{data}, 20*time.Millisecond, logging.Discard())
	require.NoError(t, err)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- fw.Watch(ctx, func() error {
			calls.Add(1)
			return nil
		})
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0644))
	require.NoError(t, os.WriteFile(data, []byte(`[{"a":1}]`), 0644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_CallbacksNeverOverlap(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "orders.json")
	require.NoError(t, os.WriteFile(data, []byte("[]"), 0644))

	fw, err := watcher.New([]string{data}, 20*time.Millisecond, logging.Discard())
	require.NoError(t, err)

	var calls, running, maxRunning atomic.Int32
	slowRescore := func() error {
		n := running.Add(1)
		for {
			m := maxRunning.Load()
			if n <= m || maxRunning.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(300 * time.Millisecond)
		running.Add(-1)
		calls.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fw.Watch(ctx, slowRescore) }()

	time.Sleep(100 * time.Millisecond)
	for i := range 3 {
		require.NoError(t, os.WriteFile(data, []byte(`[{"n":`+string(rune('1'+i))+`}]`), 0644))
		time.Sleep(80 * time.Millisecond)
	}

	// The first write starts a run; the later two coalesce into one more.
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Equal(t, int32(1), maxRunning.Load(), "re-runs must not overlap")
	assert.Equal(t, int32(0), running.Load(), "Watch returned while a re-run was in flight")
}
