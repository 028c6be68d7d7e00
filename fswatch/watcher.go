// Package fswatch exposes filesystem notifications as eventhook channels, so
// tests can hook, count and wait for file changes.
package fswatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/GoCodeAlone/eventhook"
)

// ErrWatcherClosed is returned by Run when the underlying watcher was closed.
var ErrWatcherClosed = errors.New("fswatch: watcher closed")

// Watcher pumps fsnotify events into its channels. Hooks attach to the
// exported fields:
//
//	hook, err := eventhook.ForTarget[*fswatch.Watcher, fsnotify.Event](w).
//		HookOnly(func(w *fswatch.Watcher, l eventhook.Listener[fsnotify.Event]) { w.Changed.Subscribe(l) })
type Watcher struct {
	// Changed receives every filesystem event.
	Changed eventhook.Channel[fsnotify.Event]

	// Failed receives the errors reported by fsnotify.
	Failed eventhook.Channel[error]

	watcher *fsnotify.Watcher
	logger  eventhook.Logger
}

// New creates a watcher. A nil logger discards logs.
func New(logger eventhook.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fswatch: create watcher: %w", err)
	}
	if logger == nil {
		logger = eventhook.NopLogger{}
	}
	return &Watcher{watcher: w, logger: logger}, nil
}

// Add starts watching path, a file or a directory.
func (w *Watcher) Add(path string) error {
	if err := w.watcher.Add(path); err != nil {
		return fmt.Errorf("fswatch: watch %s: %w", path, err)
	}
	w.logger.Debug("Watching path", "path", path)
	return nil
}

// Run delivers events until ctx is done or the watcher is closed. Listener
// errors, such as failed inline verifications, are logged and do not stop it.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if err := w.Changed.Emit(w, event); err != nil {
				w.logger.Error("Listener rejected filesystem event", "path", event.Name, "op", event.Op.String(), "error", err)
			}
		case werr, ok := <-w.watcher.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			if err := w.Failed.Emit(w, werr); err != nil {
				w.logger.Error("Listener rejected watcher error", "watchError", werr, "error", err)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
