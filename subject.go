package eventhook

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// observerRegistration holds information about a registered observer
type observerRegistration struct {
	observer     Observer
	eventTypes   map[string]bool // set of event types this observer is interested in
	registeredAt time.Time
}

func (r *observerRegistration) wants(eventType string) bool {
	return len(r.eventTypes) == 0 || r.eventTypes[eventType]
}

// SubjectOption configures an ObservableSubject.
type SubjectOption func(*ObservableSubject)

// WithAsyncDelivery makes NotifyObservers deliver on one goroutine per
// observer and return before the observers ran. Observer errors and panics
// are logged instead of returned.
func WithAsyncDelivery() SubjectOption {
	return func(s *ObservableSubject) {
		s.async = true
	}
}

// WithSubjectLogger sets the logger of the subject.
func WithSubjectLogger(logger Logger) SubjectOption {
	return func(s *ObservableSubject) {
		s.logger = NewPrefixLoggerDecorator(logger, "["+s.source+"]")
	}
}

// ObservableSubject is an in-memory Subject. It is the reference notification
// source for observer based hooks and a convenient event emitter in tests.
type ObservableSubject struct {
	source        string
	async         bool
	logger        Logger
	observers     map[string]*observerRegistration // key is observer ID
	order         []string
	observerMutex sync.RWMutex
	wg            sync.WaitGroup
}

// NewObservableSubject creates a subject emitting CloudEvents with the given source.
func NewObservableSubject(source string, opts ...SubjectOption) *ObservableSubject {
	s := &ObservableSubject{
		source:    source,
		logger:    NopLogger{},
		observers: make(map[string]*observerRegistration),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the CloudEvent source of events built by Emit.
func (s *ObservableSubject) Source() string {
	return s.source
}

// RegisterObserver adds an observer. Registering an ID again replaces the
// previous registration and keeps its position.
func (s *ObservableSubject) RegisterObserver(observer Observer, eventTypes ...string) error {
	if observer == nil {
		return ErrObserverNil
	}

	s.observerMutex.Lock()
	defer s.observerMutex.Unlock()

	eventTypeMap := make(map[string]bool)
	for _, eventType := range eventTypes {
		eventTypeMap[eventType] = true
	}

	id := observer.ObserverID()
	if _, exists := s.observers[id]; !exists {
		s.order = append(s.order, id)
	}
	s.observers[id] = &observerRegistration{
		observer:     observer,
		eventTypes:   eventTypeMap,
		registeredAt: time.Now(),
	}

	s.logger.Debug("Observer registered", "observerID", id, "eventTypes", eventTypes)
	return nil
}

// UnregisterObserver removes an observer from receiving notifications.
func (s *ObservableSubject) UnregisterObserver(observer Observer) error {
	if observer == nil {
		return ErrObserverNil
	}

	s.observerMutex.Lock()
	defer s.observerMutex.Unlock()

	id := observer.ObserverID()
	if _, exists := s.observers[id]; !exists {
		return nil
	}
	delete(s.observers, id)
	for i, registered := range s.order {
		if registered == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	s.logger.Debug("Observer unregistered", "observerID", id)
	return nil
}

// NotifyObservers validates event and delivers it to every interested
// observer in registration order. Synchronous delivery returns the joined
// observer errors.
func (s *ObservableSubject) NotifyObservers(ctx context.Context, event cloudevents.Event) error {
	if event.Time().IsZero() {
		event.SetTime(time.Now())
	}
	if err := ValidateCloudEvent(event); err != nil {
		s.logger.Error("Invalid CloudEvent", "eventType", event.Type(), "error", err)
		return err
	}

	registrations := s.interested(event.Type())

	if s.async {
		for _, registration := range registrations {
			s.wg.Add(1)
			go s.deliverAsync(ctx, registration, event)
		}
		return nil
	}

	var errs []error
	for _, registration := range registrations {
		if err := registration.observer.OnEvent(ctx, event); err != nil {
			s.logger.Debug("Observer error", "observerID", registration.observer.ObserverID(), "event", event.Type(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *ObservableSubject) deliverAsync(ctx context.Context, registration *observerRegistration, event cloudevents.Event) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Observer panicked", "observerID", registration.observer.ObserverID(), "event", event.Type(), "panic", r)
		}
	}()

	if err := registration.observer.OnEvent(ctx, event); err != nil {
		s.logger.Error("Observer error", "observerID", registration.observer.ObserverID(), "event", event.Type(), "error", err)
	}
}

func (s *ObservableSubject) interested(eventType string) []*observerRegistration {
	s.observerMutex.RLock()
	defer s.observerMutex.RUnlock()

	registrations := make([]*observerRegistration, 0, len(s.order))
	for _, id := range s.order {
		if registration := s.observers[id]; registration.wants(eventType) {
			registrations = append(registrations, registration)
		}
	}
	return registrations
}

// Emit builds a CloudEvent from the subject's source and notifies observers.
func (s *ObservableSubject) Emit(ctx context.Context, eventType string, data interface{}) error {
	event := NewCloudEvent(eventType, s.source, data, nil)
	if err := s.NotifyObservers(ctx, event); err != nil {
		return fmt.Errorf("failed to emit %s: %w", eventType, err)
	}
	return nil
}

// Wait blocks until all asynchronous deliveries started so far have finished.
func (s *ObservableSubject) Wait() {
	s.wg.Wait()
}

// GetObservers implements ObserverLister.
func (s *ObservableSubject) GetObservers() []ObserverInfo {
	s.observerMutex.RLock()
	defer s.observerMutex.RUnlock()

	info := make([]ObserverInfo, 0, len(s.order))
	for _, id := range s.order {
		registration := s.observers[id]
		eventTypes := make([]string, 0, len(registration.eventTypes))
		for eventType := range registration.eventTypes {
			eventTypes = append(eventTypes, eventType)
		}

		info = append(info, ObserverInfo{
			ID:           id,
			EventTypes:   eventTypes,
			RegisteredAt: registration.registeredAt,
		})
	}

	return info
}
