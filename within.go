package eventhook

import (
	"fmt"
	"time"
)

// TimedVerifier gives the system under test a fixed amount of time to reach the
// expected state before checking it. It sleeps once and then delegates to the
// wrapped verifier against the live view; it never polls or retries.
type TimedVerifier struct {
	inner Verifier
	delay time.Duration
}

// Within wraps v so that verification happens after d has elapsed.
// A negative d behaves like zero.
func Within(v Verifier, d time.Duration) *TimedVerifier {
	if d < 0 {
		d = 0
	}
	return &TimedVerifier{inner: v, delay: d}
}

// Within wraps the verifier again; the delays add up.
func (v *TimedVerifier) Within(d time.Duration) *TimedVerifier {
	return Within(v, d)
}

// Delay returns the delay applied before delegating.
func (v *TimedVerifier) Delay() time.Duration {
	return v.delay
}

// TryVerify implements Verifier.
func (v *TimedVerifier) TryVerify(view View) bool {
	v.wait()
	return v.inner.TryVerify(view)
}

// Verify implements Verifier.
func (v *TimedVerifier) Verify(view View) error {
	v.wait()
	return v.inner.Verify(view)
}

func (v *TimedVerifier) wait() {
	if v.delay == 0 {
		return
	}
	timer := time.NewTimer(v.delay)
	defer timer.Stop()
	<-timer.C
}

func (v *TimedVerifier) String() string {
	return fmt.Sprintf("%v within %s", v.inner, v.delay)
}
