package eventhook

import (
	"errors"
	"strings"
	"sync"
)

var errPredicateFailed = errors.New("predicate failed")

type clickArgs struct {
	X, Y int
}

// widget plays the base type of button; its channels are found after the
// button's own ones.
type widget struct {
	Focused Channel[bool]
}

type button struct {
	widget
	Clicked Channel[clickArgs]
	Pressed Channel[struct{}]
	Renamed *Channel[string]
}

func newButton() *button {
	return &button{Renamed: &Channel[string]{}}
}

func (b *button) Click(x, y int) error {
	return b.Clicked.Emit(b, clickArgs{X: x, Y: y})
}

func (b *button) Press() error {
	return b.Pressed.Emit(b, struct{}{})
}

func (b *button) Focus(focused bool) error {
	return b.Focused.Emit(b, focused)
}

// fakeView is a View with a fixed call count.
type fakeView struct {
	name  string
	calls int
}

func (v fakeView) EventName() string { return v.name }
func (v fakeView) Calls() int        { return v.calls }

// registryTarget keeps its channels private and exposes them through
// ChannelRegistry.
type registryTarget struct {
	saved   Channel[string]
	deleted Channel[string]
}

func (r *registryTarget) EventChannels() map[string]ChannelInspector {
	return map[string]ChannelInspector{
		"Saved":   &r.saved,
		"Deleted": &r.deleted,
	}
}

// mockLogger records log calls for assertions.
type mockLogger struct {
	mu      sync.Mutex
	entries []mockLogEntry
}

type mockLogEntry struct {
	level string
	msg   string
	args  []any
}

func (l *mockLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, mockLogEntry{level: level, msg: msg, args: args})
}

func (l *mockLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *mockLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *mockLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *mockLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }

func (l *mockLogger) find(level, msg string) *mockLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.level == level && strings.Contains(e.msg, msg) {
			entry := e
			return &entry
		}
	}
	return nil
}

func (e *mockLogEntry) arg(key string) any {
	for i := 0; i+1 < len(e.args); i += 2 {
		if e.args[i] == key {
			return e.args[i+1]
		}
	}
	return nil
}

func hookClicked(b *button, l Listener[clickArgs]) { b.Clicked.Subscribe(l) }
func hookPressed(b *button, l Listener[struct{}]) { b.Pressed.Subscribe(l) }
