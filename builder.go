package eventhook

import (
	"fmt"
)

// Option configures a HookBuilder.
type Option func(*hookOptions)

type hookOptions struct {
	logger Logger
	config Config
}

// WithLogger sets the logger hooks report to. The default discards everything.
func WithLogger(logger Logger) Option {
	return func(o *hookOptions) {
		o.logger = logger
	}
}

// WithConfig sets the wait and logging configuration of the hooks.
func WithConfig(config Config) Option {
	return func(o *hookOptions) {
		o.config = config
	}
}

// HookBuilder attaches hooks to one target.
type HookBuilder[T, A any] struct {
	target T
	opts   hookOptions
}

// ForTarget starts building a hook on target for a channel with payloads of
// type A:
//
//	hook, err := eventhook.ForTarget[*Button, ClickArgs](button).
//		Hook(func(b *Button, l eventhook.Listener[ClickArgs]) { b.Clicked.Subscribe(l) }).
//		VerifyArgs(func(args ClickArgs) error { ... }).
//		Build()
func ForTarget[T, A any](target T, opts ...Option) *HookBuilder[T, A] {
	o := hookOptions{config: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return &HookBuilder[T, A]{target: target, opts: o}
}

// Hook creates a hook, hands it to subscribe as the listener and discovers
// which channel of the target it ended up on. Setup errors are reported by
// Build.
func (b *HookBuilder[T, A]) Hook(subscribe func(target T, listener Listener[A])) *VerificationBuilder[T, A] {
	hook, err := b.attach(subscribe)
	return &VerificationBuilder[T, A]{hook: hook, err: err}
}

// HookOnly is Hook followed by Build, without inline predicates.
func (b *HookBuilder[T, A]) HookOnly(subscribe func(target T, listener Listener[A])) (*Hook[T, A], error) {
	return b.Hook(subscribe).Build()
}

func (b *HookBuilder[T, A]) attach(subscribe func(target T, listener Listener[A])) (*Hook[T, A], error) {
	if isNil(b.target) {
		return nil, ErrNilTarget
	}
	if subscribe == nil {
		return nil, ErrNilSubscribe
	}
	if err := b.opts.config.Validate(); err != nil {
		return nil, err
	}

	hook := newHook[T, A](b.target, b.opts.config, b.opts.logger)
	subscribe(b.target, hook)

	name, err := FindChannelName(b.target, hook)
	if err != nil {
		return nil, fmt.Errorf("failed to attach hook: %w", err)
	}
	hook.setName(name)
	hook.log().Debug("Hook attached", "target", fmt.Sprintf("%T", b.target))
	return hook, nil
}

// VerificationBuilder collects the inline predicates of a hook.
type VerificationBuilder[T, A any] struct {
	hook       *Hook[T, A]
	predicates []Predicate[T, A]
	err        error
	built      bool
}

// Verify adds an inline predicate over the sender and the payload.
// Predicates run in the order they were added.
func (vb *VerificationBuilder[T, A]) Verify(predicate Predicate[T, A]) *VerificationBuilder[T, A] {
	if predicate != nil {
		vb.predicates = append(vb.predicates, predicate)
	}
	return vb
}

// VerifyArgs adds an inline predicate over the payload only.
func (vb *VerificationBuilder[T, A]) VerifyArgs(predicate func(args A) error) *VerificationBuilder[T, A] {
	if predicate == nil {
		return vb
	}
	return vb.Verify(func(_ T, args A) error {
		return predicate(args)
	})
}

// Build installs the predicates and returns the hook. It returns the setup
// error of Hook, if any, and ErrHookAlreadyBuilt when called twice.
func (vb *VerificationBuilder[T, A]) Build() (*Hook[T, A], error) {
	if vb.err != nil {
		return nil, vb.err
	}
	if vb.built {
		return nil, ErrHookAlreadyBuilt
	}
	vb.built = true
	vb.hook.install(vb.predicates)
	return vb.hook, nil
}
