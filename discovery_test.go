package eventhook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panel struct {
	Button
	Closed Channel[string]
}

// Button is embedded by pointer in other fixtures.
type Button struct {
	Clicked Channel[clickArgs]
}

type shadowing struct {
	*Button
	Clicked Channel[clickArgs]
}

type withInterfaceField struct {
	Source ChannelInspector
	Nil    ChannelInspector
}

type cyclic struct {
	*cyclic
	Ping Channel[int]
}

func TestFindChannelName_OwnFields(t *testing.T) {
	b := newButton()
	hook, err := ForTarget[*button, struct{}](b).HookOnly(hookPressed)
	require.NoError(t, err)

	name, err := FindChannelName(b, hook)
	require.NoError(t, err)
	assert.Equal(t, "Pressed", name)
}

func TestFindChannelName_PointerField(t *testing.T) {
	b := newButton()
	hook, err := ForTarget[*button, string](b).
		HookOnly(func(b *button, l Listener[string]) { b.Renamed.Subscribe(l) })
	require.NoError(t, err)
	assert.Equal(t, "Renamed", hook.EventName())
}

func TestFindChannelName_UnexportedEmbeddedStruct(t *testing.T) {
	b := newButton()
	hook, err := ForTarget[*button, bool](b).
		HookOnly(func(b *button, l Listener[bool]) { b.Focused.Subscribe(l) })
	require.NoError(t, err)
	assert.Equal(t, "Focused", hook.EventName())

	require.NoError(t, b.Focus(true))
	assert.Equal(t, []bool{true}, hook.History())
}

func TestFindChannelName_EmbeddedStruct(t *testing.T) {
	p := &panel{}
	hook, err := ForTarget[*panel, clickArgs](p).
		HookOnly(func(p *panel, l Listener[clickArgs]) { p.Clicked.Subscribe(l) })
	require.NoError(t, err)
	assert.Equal(t, "Clicked", hook.EventName())
}

func TestFindChannelName_OwnFieldsBeforeEmbedded(t *testing.T) {
	s := &shadowing{Button: &Button{}}
	inner, err := ForTarget[*shadowing, clickArgs](s).
		HookOnly(func(s *shadowing, l Listener[clickArgs]) { s.Button.Clicked.Subscribe(l) })
	require.NoError(t, err)
	assert.Equal(t, "Clicked", inner.EventName())

	outer, err := ForTarget[*shadowing, clickArgs](s).
		HookOnly(func(s *shadowing, l Listener[clickArgs]) { s.Clicked.Subscribe(l) })
	require.NoError(t, err)
	assert.Equal(t, "Clicked", outer.EventName())

	require.NoError(t, s.Clicked.Emit(s, clickArgs{}))
	assert.Equal(t, 1, outer.Calls())
	assert.Zero(t, inner.Calls())
}

func TestFindChannelName_InterfaceField(t *testing.T) {
	ch := &Channel[string]{}
	target := &withInterfaceField{Source: ch}
	hook, err := ForTarget[*withInterfaceField, string](target).
		HookOnly(func(_ *withInterfaceField, l Listener[string]) { ch.Subscribe(l) })
	require.NoError(t, err)
	assert.Equal(t, "Source", hook.EventName())
}

func TestFindChannelName_CyclicEmbedding(t *testing.T) {
	c := &cyclic{}
	c.cyclic = c

	var ch Channel[int]
	_, err := ForTarget[*cyclic, int](c).
		HookOnly(func(_ *cyclic, l Listener[int]) { ch.Subscribe(l) })
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestFindChannelName_Registry(t *testing.T) {
	r := &registryTarget{}
	hook, err := ForTarget[*registryTarget, string](r).
		HookOnly(func(r *registryTarget, l Listener[string]) { r.deleted.Subscribe(l) })
	require.NoError(t, err)
	assert.Equal(t, "Deleted", hook.EventName())

	require.NoError(t, r.deleted.Emit(r, "doc-1"))
	assert.Equal(t, []string{"doc-1"}, hook.History())
}

func TestFindChannelName_NotFound(t *testing.T) {
	b := newButton()
	var elsewhere Channel[clickArgs]

	_, err := ForTarget[*button, clickArgs](b).
		HookOnly(func(_ *button, l Listener[clickArgs]) { elsewhere.Subscribe(l) })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChannelNotFound)
	assert.False(t, errors.Is(err, ErrVerificationFailed))

	var verr *VerificationError
	assert.False(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "*eventhook.button")
}

func TestFindChannelName_SubscribeDoesNothing(t *testing.T) {
	b := newButton()
	_, err := ForTarget[*button, clickArgs](b).
		Hook(func(*button, Listener[clickArgs]) {}).
		VerifyArgs(func(clickArgs) error { return nil }).
		Build()
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestFindChannelName_NilTarget(t *testing.T) {
	_, err := FindChannelName(nil, struct{}{})
	assert.ErrorIs(t, err, ErrNilTarget)

	var b *button
	_, err = FindChannelName(b, struct{}{})
	assert.ErrorIs(t, err, ErrNilTarget)
}

func TestFindChannelName_NonStructTarget(t *testing.T) {
	_, err := FindChannelName(42, struct{}{})
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestFindChannelName_Observers(t *testing.T) {
	subject := NewObservableSubject("test://discovery")
	all, err := ObserveSubject(subject, nil).Build()
	require.NoError(t, err)
	assert.Equal(t, "observer(*)", all.EventName())

	some, err := ObserveSubject(subject, []string{"b.updated", "a.created"}).Build()
	require.NoError(t, err)
	assert.Equal(t, "observer(a.created,b.updated)", some.EventName())
}
