package fswatch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoCodeAlone/eventhook"
	"github.com/GoCodeAlone/eventhook/hooktest"
)

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := New(hooktest.NewTestLogger(nil))
	require.NoError(t, err)
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return w
}

func TestWatcher_DiscoveredByField(t *testing.T) {
	w, err := New(nil)
	require.NoError(t, err)
	defer w.Close()

	changed, err := eventhook.ForTarget[*Watcher, fsnotify.Event](w).
		HookOnly(func(w *Watcher, l eventhook.Listener[fsnotify.Event]) { w.Changed.Subscribe(l) })
	require.NoError(t, err)
	assert.Equal(t, "Changed", changed.EventName())

	failed, err := eventhook.ForTarget[*Watcher, error](w).
		HookOnly(func(w *Watcher, l eventhook.Listener[error]) { w.Failed.Subscribe(l) })
	require.NoError(t, err)
	assert.Equal(t, "Failed", failed.EventName())
}

func TestWatcher_WaitForFileCreation(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	target := filepath.Join(dir, "config.yaml")
	hook, err := eventhook.ForTarget[*Watcher, fsnotify.Event](w).
		Hook(func(w *Watcher, l eventhook.Listener[fsnotify.Event]) { w.Changed.Subscribe(l) }).
		VerifyArgs(func(ev fsnotify.Event) error {
			if filepath.Base(ev.Name) != "config.yaml" {
				return errors.New("unexpected file " + ev.Name)
			}
			return nil
		}).
		Build()
	require.NoError(t, err)

	hooktest.RequireWaitForCall(t, hook, 5*time.Second, func(context.Context) error {
		return os.WriteFile(target, []byte("waitTimeout: 1s\n"), 0o600)
	})

	hooktest.AssertVerified(t, hook, eventhook.AtLeast(1))
	first := hook.History()[0]
	assert.Equal(t, target, first.Name)
	assert.True(t, first.Has(fsnotify.Create) || first.Has(fsnotify.Write))
}

func TestWatcher_RejectedEventDoesNotStopRun(t *testing.T) {
	dir := t.TempDir()
	logger := hooktest.NewTestLogger(nil)
	w, err := New(logger)
	require.NoError(t, err)
	require.NoError(t, w.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
		_ = w.Close()
	}()

	hook, err := eventhook.ForTarget[*Watcher, fsnotify.Event](w).
		Hook(func(w *Watcher, l eventhook.Listener[fsnotify.Event]) { w.Changed.Subscribe(l) }).
		VerifyArgs(func(fsnotify.Event) error { return errors.New("rejected") }).
		Build()
	require.NoError(t, err)

	hooktest.RequireWaitForCall(t, hook, 5*time.Second, func(context.Context) error {
		return os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o600)
	})
	hooktest.RequireWaitForCall(t, hook, 5*time.Second, func(context.Context) error {
		return os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o600)
	})

	require.Eventually(t, func() bool {
		return logger.FindEntry("error", "Listener rejected filesystem event") != nil
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_RunStopsWhenClosed(t *testing.T) {
	w, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Run(context.Background()), ErrWatcherClosed)
}
