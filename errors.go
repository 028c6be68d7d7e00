package eventhook

import (
	"errors"
	"fmt"
)

// Hook errors
var (
	// Verification errors
	ErrVerificationFailed = errors.New("verification failed")
	ErrNegativeThreshold  = errors.New("call count threshold must not be negative")

	// Setup errors
	ErrChannelNotFound  = errors.New("event channel not found")
	ErrNilTarget        = errors.New("target is nil")
	ErrNilSubscribe     = errors.New("subscribe function is nil")
	ErrHookAlreadyBuilt = errors.New("hook already built")

	// Wait errors
	ErrWaitTimeout = errors.New("timed out waiting for event")

	// Config errors
	ErrInvalidConfig = errors.New("invalid hook config")

	// Subject errors
	ErrObserverNil = errors.New("observer is nil")
)

// VerificationError reports a failed assertion on a hook. It is returned both by
// inline predicates (Predicate > 0) and by call count verifiers (Predicate == 0).
type VerificationError struct {
	// Event is the discovered channel name.
	Event string

	// Predicate is the 1-based index of the failing inline predicate, 0 for verifiers.
	Predicate int

	// Call is the call number at which an inline predicate failed.
	Call int

	// Calls is the call count observed by a verifier.
	Calls int

	// Cause is the error returned by the inline predicate.
	Cause error

	msg string
}

func (e *VerificationError) Error() string {
	if e.Cause != nil {
		return e.msg + ": " + e.Cause.Error()
	}
	return e.msg
}

func (e *VerificationError) Unwrap() error {
	return e.Cause
}

// Is makes every VerificationError match ErrVerificationFailed.
func (e *VerificationError) Is(target error) bool {
	return target == ErrVerificationFailed
}

func newPredicateError(event string, predicate, call int, cause error) *VerificationError {
	return &VerificationError{
		Event:     event,
		Predicate: predicate,
		Call:      call,
		Cause:     cause,
		msg:       fmt.Sprintf("verification nr. %d for event %q failed at call nr. %d", predicate, event, call),
	}
}

func newCountError(event string, calls int, expectation string) *VerificationError {
	return &VerificationError{
		Event: event,
		Calls: calls,
		msg:   fmt.Sprintf("event %q: expected %s, got %d", event, expectation, calls),
	}
}
