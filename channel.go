package eventhook

import (
	"reflect"
	"sync"
)

// Listener receives the notifications delivered by a channel. A non-nil error
// returned from Notify aborts the delivery and is handed back to the emitter.
type Listener[A any] interface {
	Notify(sender any, args A) error
}

// ChannelInspector is implemented by notification channels that can tell
// whether a given listener is currently subscribed. Discovery relies on it.
type ChannelInspector interface {
	HasListener(listener any) bool
}

// Channel is a named notification source with payloads of type A. It is meant
// to be embedded as an exported field of the object that raises the event:
//
//	type Button struct {
//		Clicked eventhook.Channel[ClickArgs]
//	}
//
// The zero value is ready to use.
type Channel[A any] struct {
	mu        sync.RWMutex
	listeners []Listener[A]
}

// Subscribe appends a listener. Listeners are notified in subscription order.
func (c *Channel[A]) Subscribe(listener Listener[A]) {
	if listener == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

// Unsubscribe removes the first registration of listener and reports whether
// one was found.
func (c *Channel[A]) Unsubscribe(listener Listener[A]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.listeners {
		if sameListener(l, listener) {
			c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// HasListener implements ChannelInspector.
func (c *Channel[A]) HasListener(listener any) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, l := range c.listeners {
		if sameListener(l, listener) {
			return true
		}
	}
	return false
}

// Len returns the number of subscribed listeners.
func (c *Channel[A]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.listeners)
}

// Emit delivers args to every listener subscribed at the time of the call.
// Delivery stops at the first listener error, which is returned.
func (c *Channel[A]) Emit(sender any, args A) error {
	c.mu.RLock()
	listeners := make([]Listener[A], len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, l := range listeners {
		if err := l.Notify(sender, args); err != nil {
			return err
		}
	}
	return nil
}

// sameListener compares listener identities without panicking on
// non-comparable dynamic types; those never match.
func sameListener(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
