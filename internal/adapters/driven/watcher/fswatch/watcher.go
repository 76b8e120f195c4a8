// Package fswatch reports changes to watched documents using fsnotify.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a new file and renaming it over the old
// one keep producing events.
package fswatch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lenk/internal/core/ports/driven"
	"github.com/custodia-labs/lenk/internal/logger"
)

// DefaultDebounce collapses bursts of events from a single save.
const DefaultDebounce = 150 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.DocumentWatcher = (*Watcher)(nil)

// Watcher implements driven.DocumentWatcher.
type Watcher struct {
	debounce time.Duration

	mu       sync.Mutex
	watchers []*fsnotify.Watcher
}

// NewWatcher creates a watcher that waits debounce after the last event
// before reporting a change. Zero uses DefaultDebounce.
func NewWatcher(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch emits a value each time the file at path is written or replaced.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w.mu.Lock()
	w.watchers = append(w.watchers, fw)
	w.mu.Unlock()

	changes := make(chan struct{}, 1)
	go w.loop(ctx, fw, abs, changes)
	return changes, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, path string, changes chan<- struct{}) {
	defer close(changes)
	defer w.release(fw)

	log := logger.With("watcher")
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("document event", "path", path, "op", event.Op.String())
			timer.Reset(w.debounce)
		case <-timer.C:
			// Coalesce with an unread notification.
			select {
			case changes <- struct{}{}:
			default:
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "path", path, "error", err)
		}
	}
}

// release closes fw and forgets it.
func (w *Watcher) release(fw *fsnotify.Watcher) {
	w.mu.Lock()
	for i, cur := range w.watchers {
		if cur == fw {
			w.watchers = append(w.watchers[:i], w.watchers[i+1:]...)
			break
		}
	}
	w.mu.Unlock()
	fw.Close()
}

// active returns the number of open watches.
func (w *Watcher) active() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watchers)
}

// Close stops all watches.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var first error
	for _, fw := range w.watchers {
		if err := fw.Close(); err != nil && first == nil {
			first = err
		}
	}
	w.watchers = nil
	return first
}
