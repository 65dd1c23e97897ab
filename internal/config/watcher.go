// ABOUTME: Polling-based file watcher for settings hot-reload
// ABOUTME: Compares file mtimes each interval; runs until its context is cancelled

package config

import (
	"context"
	"os"
	"time"
)

// DefaultReloadInterval is how often settings files are polled.
const DefaultReloadInterval = 2 * time.Second

// Watcher reports changes to a fixed set of files by polling mtime.
// Run and Check must not be called concurrently.
type Watcher struct {
	paths    []string
	interval time.Duration
	onChange func()
	mtimes   map[string]time.Time
}

// NewWatcher creates a watcher that calls onChange when any path is created,
// modified, or removed. A non-positive interval uses DefaultReloadInterval.
func NewWatcher(paths []string, interval time.Duration, onChange func()) *Watcher {
	if interval <= 0 {
		interval = DefaultReloadInterval
	}
	w := &Watcher{
		paths:    paths,
		interval: interval,
		onChange: onChange,
		mtimes:   make(map[string]time.Time),
	}
	w.snapshot()
	return w
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check polls once, calling onChange synchronously if anything changed.
func (w *Watcher) Check() bool {
	if !w.changed() {
		return false
	}
	w.snapshot()
	w.onChange()
	return true
}

func (w *Watcher) changed() bool {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			if _, existed := w.mtimes[path]; existed {
				return true
			}
			continue
		}
		prev, ok := w.mtimes[path]
		if !ok || !info.ModTime().Equal(prev) {
			return true
		}
	}
	return false
}

func (w *Watcher) snapshot() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		w.mtimes[path] = info.ModTime()
	}
}
