package eventhook

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// listenerObserver delivers CloudEvents to a Listener. Its observer ID is the
// listener's ID when it has one, so a hook registered on a subject can be
// found again through ObserverLister.
type listenerObserver struct {
	id       string
	listener Listener[CloudEvent]
}

// ObserverFor adapts a CloudEvent listener, typically the one handed to a
// subscribe function, to the Observer interface.
func ObserverFor(listener Listener[CloudEvent]) Observer {
	id := ""
	if withID, ok := listener.(identified); ok {
		id = withID.ID()
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &listenerObserver{id: id, listener: listener}
}

func (o *listenerObserver) OnEvent(_ context.Context, event CloudEvent) error {
	return o.listener.Notify(nil, event)
}

func (o *listenerObserver) ObserverID() string {
	return o.id
}

// ObserveSubject starts a hook recording the CloudEvents subject delivers.
// With eventTypes set only those types are recorded. The hook's event name is
// "observer(<types>)", or "observer(*)" for all types.
func ObserveSubject[S Subject](subject S, eventTypes []string, opts ...Option) *VerificationBuilder[S, CloudEvent] {
	var registerErr error
	vb := ForTarget[S, CloudEvent](subject, opts...).
		Hook(func(s S, l Listener[CloudEvent]) {
			registerErr = s.RegisterObserver(ObserverFor(l), eventTypes...)
		})
	if registerErr != nil {
		vb.err = fmt.Errorf("failed to register hook observer: %w", registerErr)
	}
	return vb
}
