package eventhook

import (
	"context"
	"fmt"
	"time"
)

// Trigger performs the action expected to raise the event. It may block until
// its own work completes or merely schedule the notification on another goroutine.
type Trigger func(ctx context.Context) error

// Waiter is implemented by hooks. It lets helpers such as hooktest wait on a
// hook without knowing its type parameters.
type Waiter interface {
	View
	WaitForCall(ctx context.Context, trigger Trigger) error
	WaitForCalls(ctx context.Context, n int, trigger Trigger) error
}

// WaitForCall runs trigger and then blocks until the hook has recorded at
// least one more notification.
func (h *Hook[T, A]) WaitForCall(ctx context.Context, trigger Trigger) error {
	return h.WaitForCalls(ctx, 1, trigger)
}

// WaitForCalls runs trigger and then blocks until the hook has recorded at
// least n more notifications than before trigger ran. Notifications that land
// while trigger is still running count. Reset does not release a waiter.
//
// The wait ends with ctx's error when ctx is done and with ErrWaitTimeout when
// Config.WaitTimeout is set and elapses. With neither, it waits indefinitely.
func (h *Hook[T, A]) WaitForCalls(ctx context.Context, n int, trigger Trigger) error {
	start, _ := h.sequence()
	logger := h.log()

	if trigger != nil {
		if err := trigger(ctx); err != nil {
			return fmt.Errorf("trigger for event %q failed: %w", h.EventName(), err)
		}
	}

	target := start + uint64(max(n, 0))

	poll := h.config.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var timeout <-chan time.Time
	if h.config.WaitTimeout > 0 {
		timer := time.NewTimer(h.config.WaitTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		seq, changed := h.sequence()
		if seq >= target {
			logger.Debug("Wait for call resolved", "calls", seq-start)
			return nil
		}

		select {
		case <-changed:
		case <-ticker.C:
		case <-timeout:
			logger.Warn("Wait for call timed out", "timeout", h.config.WaitTimeout, "expected", n, "received", seq-start)
			return fmt.Errorf("%w: event %q raised %d of %d time(s) within %s",
				ErrWaitTimeout, h.EventName(), seq-start, n, h.config.WaitTimeout)
		case <-ctx.Done():
			return fmt.Errorf("waiting for event %q: %w", h.EventName(), ctx.Err())
		}
	}
}
