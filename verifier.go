package eventhook

import (
	"fmt"
	"time"
)

// View is the read-only state of a hook that verifiers inspect.
type View interface {
	// EventName returns the name of the channel the hook is attached to.
	EventName() string

	// Calls returns the number of recorded notifications.
	Calls() int
}

// Verifier is a predicate over a hook's call count.
// Verify must fail exactly when TryVerify reports false.
type Verifier interface {
	// TryVerify reports whether the view satisfies the verifier. It has no side effects.
	TryVerify(view View) bool

	// Verify returns a *VerificationError when the view does not satisfy the verifier.
	Verify(view View) error
}

type bound int

const (
	boundExact bound = iota
	boundMinimum
	boundMaximum
)

func (b bound) String() string {
	switch b {
	case boundMinimum:
		return "at least"
	case boundMaximum:
		return "at most"
	default:
		return "exactly"
	}
}

// CountVerifier compares a hook's call count against a fixed threshold.
// It is immutable and can be shared between hooks.
type CountVerifier struct {
	bound     bound
	threshold int
}

func newCountVerifier(b bound, threshold int) *CountVerifier {
	if threshold < 0 {
		panic(fmt.Errorf("%w: %s %d", ErrNegativeThreshold, b, threshold))
	}
	return &CountVerifier{bound: b, threshold: threshold}
}

// Exactly expects the event to be raised exactly n times.
// It panics if n is negative.
func Exactly(n int) *CountVerifier {
	return newCountVerifier(boundExact, n)
}

// AtLeast expects the event to be raised n or more times.
// It panics if n is negative.
func AtLeast(n int) *CountVerifier {
	return newCountVerifier(boundMinimum, n)
}

// AtMost expects the event to be raised n or fewer times.
// It panics if n is negative.
func AtMost(n int) *CountVerifier {
	return newCountVerifier(boundMaximum, n)
}

// Never is Exactly(0).
func Never() *CountVerifier { return Exactly(0) }

// Once is Exactly(1).
func Once() *CountVerifier { return Exactly(1) }

// Twice is Exactly(2).
func Twice() *CountVerifier { return Exactly(2) }

func (v *CountVerifier) check(calls int) bool {
	switch v.bound {
	case boundMinimum:
		return calls >= v.threshold
	case boundMaximum:
		return calls <= v.threshold
	default:
		return calls == v.threshold
	}
}

// TryVerify implements Verifier.
func (v *CountVerifier) TryVerify(view View) bool {
	return v.check(view.Calls())
}

// Verify implements Verifier.
func (v *CountVerifier) Verify(view View) error {
	calls := view.Calls()
	if v.check(calls) {
		return nil
	}
	return newCountError(view.EventName(), calls, v.String())
}

// Within delays verification by d, see TimedVerifier.
func (v *CountVerifier) Within(d time.Duration) *TimedVerifier {
	return Within(v, d)
}

func (v *CountVerifier) String() string {
	return fmt.Sprintf("%s %d call(s)", v.bound, v.threshold)
}
