package services

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/randomizedcoder/go-cancellable/internal/cancel"
	"github.com/randomizedcoder/go-cancellable/internal/cancellable"
)

// Watcher yields filesystem events for the watched paths.
type Watcher struct {
	w   *fsnotify.Watcher
	ops fsnotify.Op
}

// NewWatcher watches paths, yielding only events whose Op intersects ops.
// Zero ops yields every event.
func NewWatcher(ops fsnotify.Op, paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("services: create watcher: %w", err)
	}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("services: watch %s: %w", p, err)
		}
	}
	return &Watcher{w: w, ops: ops}, nil
}

// NewHandle returns the owner's path controls.
func (w *Watcher) NewHandle(*cancel.Token) *WatchList {
	return &WatchList{w: w.w}
}

// Run waits for the next matching event. A watcher error fails the loop.
func (w *Watcher) Run(ctx context.Context) (cancellable.Result[fsnotify.Event], error) {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return cancellable.Cancelled[fsnotify.Event](), nil
			}
			if w.ops != 0 && ev.Op&w.ops == 0 {
				continue
			}
			return cancellable.Item(ev), nil
		case err, ok := <-w.w.Errors:
			if !ok {
				return cancellable.Cancelled[fsnotify.Event](), nil
			}
			return cancellable.Result[fsnotify.Event]{}, fmt.Errorf("services: watch: %w", err)
		case <-ctx.Done():
			return cancellable.Cancelled[fsnotify.Event](), nil
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.w.Close()
}

// WatchList adds and removes watched paths while the Watcher runs.
type WatchList struct {
	w *fsnotify.Watcher
}

// Add starts watching path.
func (l *WatchList) Add(path string) error {
	return l.w.Add(path)
}

// Remove stops watching path.
func (l *WatchList) Remove(path string) error {
	return l.w.Remove(path)
}

// Paths returns the watched paths.
func (l *WatchList) Paths() []string {
	return l.w.WatchList()
}
