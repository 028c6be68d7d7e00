package eventhook

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservableSubject_DeliversInRegistrationOrder(t *testing.T) {
	subject := NewObservableSubject("test://subject")
	var mu sync.Mutex
	var order []string
	record := func(id string) Observer {
		return NewFunctionalObserver(id, func(context.Context, CloudEvent) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, id)
			return nil
		})
	}

	require.NoError(t, subject.RegisterObserver(record("b")))
	require.NoError(t, subject.RegisterObserver(record("a")))
	require.NoError(t, subject.RegisterObserver(record("c"), "other.type"))

	require.NoError(t, subject.Emit(context.Background(), "order.created", map[string]string{"id": "1"}))
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestObservableSubject_ReRegisterKeepsPosition(t *testing.T) {
	subject := NewObservableSubject("test://subject")
	noop := func(context.Context, CloudEvent) error { return nil }

	require.NoError(t, subject.RegisterObserver(NewFunctionalObserver("first", noop)))
	require.NoError(t, subject.RegisterObserver(NewFunctionalObserver("second", noop)))
	require.NoError(t, subject.RegisterObserver(NewFunctionalObserver("first", noop), "x"))

	observers := subject.GetObservers()
	require.Len(t, observers, 2)
	assert.Equal(t, "first", observers[0].ID)
	assert.Equal(t, []string{"x"}, observers[0].EventTypes)
	assert.Equal(t, "second", observers[1].ID)
}

func TestObservableSubject_Unregister(t *testing.T) {
	subject := NewObservableSubject("test://subject")
	calls := 0
	observer := NewFunctionalObserver("o", func(context.Context, CloudEvent) error {
		calls++
		return nil
	})

	require.NoError(t, subject.RegisterObserver(observer))
	require.NoError(t, subject.UnregisterObserver(observer))
	require.NoError(t, subject.UnregisterObserver(observer))
	require.NoError(t, subject.Emit(context.Background(), "x", nil))

	assert.Zero(t, calls)
	assert.Empty(t, subject.GetObservers())
}

func TestObservableSubject_NilObserver(t *testing.T) {
	subject := NewObservableSubject("test://subject")
	assert.ErrorIs(t, subject.RegisterObserver(nil), ErrObserverNil)
	assert.ErrorIs(t, subject.UnregisterObserver(nil), ErrObserverNil)
}

func TestObservableSubject_JoinsObserverErrors(t *testing.T) {
	subject := NewObservableSubject("test://subject")
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	require.NoError(t, subject.RegisterObserver(NewFunctionalObserver("a", func(context.Context, CloudEvent) error { return errA })))
	require.NoError(t, subject.RegisterObserver(NewFunctionalObserver("b", func(context.Context, CloudEvent) error { return errB })))

	err := subject.Emit(context.Background(), "x", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, err.Error(), "failed to emit x")
}

func TestObservableSubject_RejectsInvalidEvent(t *testing.T) {
	subject := NewObservableSubject("test://subject")
	event := NewCloudEvent("", "test://subject", nil, nil)

	err := subject.NotifyObservers(context.Background(), event)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CloudEvent validation failed")
}

func TestObservableSubject_AsyncDeliveryLogsFailures(t *testing.T) {
	logger := &mockLogger{}
	subject := NewObservableSubject("test://async", WithAsyncDelivery(), WithSubjectLogger(logger))
	require.NoError(t, subject.RegisterObserver(NewFunctionalObserver("failing", func(context.Context, CloudEvent) error {
		return errPredicateFailed
	})))
	require.NoError(t, subject.RegisterObserver(NewFunctionalObserver("panicking", func(context.Context, CloudEvent) error {
		panic("observer bug")
	})))

	require.NoError(t, subject.Emit(context.Background(), "x", nil))
	subject.Wait()

	failed := logger.find("error", "[test://async] Observer error")
	require.NotNil(t, failed)
	assert.Equal(t, "failing", failed.arg("observerID"))

	panicked := logger.find("error", "[test://async] Observer panicked")
	require.NotNil(t, panicked)
	assert.Equal(t, "observer bug", panicked.arg("panic"))
}
