package eventhook

import (
	"sync"

	"github.com/google/uuid"
)

// Predicate is an inline verification run on every notification. A non-nil
// error rejects the notification.
type Predicate[T, A any] func(sender T, args A) error

// Hook records the notifications of one channel of a target of type T with
// payloads of type A. Hooks are created by ForTarget and are safe for
// concurrent notification.
type Hook[T, A any] struct {
	id     string
	target T
	config Config

	// notifyMu serializes whole notifications, predicates included.
	notifyMu   sync.Mutex
	predicates []Predicate[T, A]

	// mu guards the recorded state so readers never wait on a running predicate.
	mu      sync.RWMutex
	name    string
	logger  Logger
	calls   int
	history []A
	seq     uint64
	changed chan struct{}
}

func newHook[T, A any](target T, config Config, logger Logger) *Hook[T, A] {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Hook[T, A]{
		id:      id.String(),
		target:  target,
		config:  config,
		logger:  loggerOrNop(logger),
		changed: make(chan struct{}),
	}
}

// ID returns the unique identifier of the hook.
func (h *Hook[T, A]) ID() string {
	return h.id
}

// Target returns the object the hook was attached to.
func (h *Hook[T, A]) Target() T {
	return h.target
}

// EventName implements View.
func (h *Hook[T, A]) EventName() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.name
}

// Calls implements View.
func (h *Hook[T, A]) Calls() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.calls
}

// History returns the recorded payloads in arrival order.
func (h *Hook[T, A]) History() []A {
	h.mu.RLock()
	defer h.mu.RUnlock()

	history := make([]A, len(h.history))
	copy(history, h.history)
	return history
}

// Last returns the most recent payload, if any.
func (h *Hook[T, A]) Last() (A, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var zero A
	if len(h.history) == 0 {
		return zero, false
	}
	return h.history[len(h.history)-1], true
}

// Notify implements Listener. It records the notification and then runs the
// inline predicates in registration order. The first failing predicate is
// reported as a *VerificationError; the notification stays recorded.
func (h *Hook[T, A]) Notify(sender any, args A) error {
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()

	h.mu.Lock()
	h.calls++
	h.history = append(h.history, args)
	h.seq++
	call, name, logger := h.calls, h.name, h.logger
	close(h.changed)
	h.changed = make(chan struct{})
	h.mu.Unlock()

	if h.config.LogNotifications {
		logger.Debug("Event recorded", "call", call, "args", args)
	}

	typedSender := h.senderOf(sender)
	for i, predicate := range h.predicates {
		if err := predicate(typedSender, args); err != nil {
			verr := newPredicateError(name, i+1, call, err)
			logger.Warn("Inline verification failed", "predicate", i+1, "call", call, "error", err)
			return verr
		}
	}
	return nil
}

func (h *Hook[T, A]) senderOf(sender any) T {
	if typed, ok := sender.(T); ok {
		return typed
	}
	return h.target
}

// Verify checks the hook against v.
func (h *Hook[T, A]) Verify(v Verifier) error {
	return v.Verify(h)
}

// TryVerify reports whether the hook satisfies v.
func (h *Hook[T, A]) TryVerify(v Verifier) bool {
	return v.TryVerify(h)
}

// Reset clears the call count and history. Inline predicates and the channel
// registration are kept, so the hook can be reused for the next test phase.
func (h *Hook[T, A]) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = 0
	h.history = nil
}

func (h *Hook[T, A]) setName(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.name = name
	h.logger = NewValueInjectionLoggerDecorator(h.logger, "event", name, "hookID", h.id)
}

func (h *Hook[T, A]) log() Logger {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.logger
}

func (h *Hook[T, A]) install(predicates []Predicate[T, A]) {
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()
	h.predicates = append(h.predicates, predicates...)
}

func (h *Hook[T, A]) sequence() (uint64, <-chan struct{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.seq, h.changed
}
