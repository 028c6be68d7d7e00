// Package hooktest reports eventhook results through testify, so a failed
// verification fails the running test.
package hooktest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoCodeAlone/eventhook"
)

// AssertVerified asserts that view satisfies v.
func AssertVerified(t assert.TestingT, view eventhook.View, v eventhook.Verifier, msgAndArgs ...interface{}) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return assert.NoError(t, v.Verify(view), msgAndArgs...)
}

// RequireVerified is AssertVerified that stops the test on failure.
func RequireVerified(t require.TestingT, view eventhook.View, v eventhook.Verifier, msgAndArgs ...interface{}) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	require.NoError(t, v.Verify(view), msgAndArgs...)
}

// AssertVerificationFailed asserts that err is a *eventhook.VerificationError
// and returns it.
func AssertVerificationFailed(t assert.TestingT, err error, msgAndArgs ...interface{}) *eventhook.VerificationError {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	var verr *eventhook.VerificationError
	if !assert.ErrorAs(t, err, &verr, msgAndArgs...) {
		return nil
	}
	return verr
}

// AssertNotVerificationError asserts that err, if any, is not a verification
// failure. Setup errors such as eventhook.ErrChannelNotFound pass.
func AssertNotVerificationError(t assert.TestingT, err error, msgAndArgs ...interface{}) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if errors.Is(err, eventhook.ErrVerificationFailed) {
		return assert.Fail(t, fmt.Sprintf("unexpected verification error: %v", err), msgAndArgs...)
	}
	return true
}

// RequireWaitForCall runs trigger and waits at most timeout for the hook to
// record one more notification.
func RequireWaitForCall(t testing.TB, hook eventhook.Waiter, timeout time.Duration, trigger eventhook.Trigger) {
	t.Helper()
	RequireWaitForCalls(t, hook, 1, timeout, trigger)
}

// RequireWaitForCalls runs trigger and waits at most timeout for the hook to
// record n more notifications.
func RequireWaitForCalls(t testing.TB, hook eventhook.Waiter, n int, timeout time.Duration, trigger eventhook.Trigger) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	require.NoError(t, hook.WaitForCalls(ctx, n, trigger), "waiting for %d call(s) of event %q", n, hook.EventName())
}
