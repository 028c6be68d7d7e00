package eventhook

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ChannelRegistry is implemented by targets that expose their channels
// explicitly instead of through exported struct fields. Discovery prefers it
// over reflection.
type ChannelRegistry interface {
	EventChannels() map[string]ChannelInspector
}

// identified is implemented by listeners that carry a stable ID, such as hooks.
type identified interface {
	ID() string
}

var inspectorType = reflect.TypeOf((*ChannelInspector)(nil)).Elem()

// FindChannelName returns the name of the channel on target that currently
// holds listener. It looks, in order, at:
//
//   - the target's ChannelRegistry, in name order;
//   - the observers of a target implementing ObserverLister;
//   - the target's exported struct fields implementing ChannelInspector, own
//     fields first and then embedded structs, breadth first.
//
// ErrChannelNotFound is returned when no channel holds the listener.
func FindChannelName(target, listener any) (string, error) {
	if isNil(target) {
		return "", ErrNilTarget
	}

	if registry, ok := target.(ChannelRegistry); ok {
		if name, found := findInRegistry(registry, listener); found {
			return name, nil
		}
	}

	if lister, ok := target.(ObserverLister); ok {
		if name, found := findInObservers(lister, listener); found {
			return name, nil
		}
	}

	if name, found := findInFields(reflect.ValueOf(target), listener); found {
		return name, nil
	}

	return "", fmt.Errorf("%w on %T: make sure the subscribe function registers the listener on the target passed to ForTarget",
		ErrChannelNotFound, target)
}

func findInRegistry(registry ChannelRegistry, listener any) (string, bool) {
	channels := registry.EventChannels()
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if ch := channels[name]; ch != nil && ch.HasListener(listener) {
			return name, true
		}
	}
	return "", false
}

func findInObservers(lister ObserverLister, listener any) (string, bool) {
	id, ok := listener.(identified)
	if !ok {
		return "", false
	}
	for _, info := range lister.GetObservers() {
		if info.ID != id.ID() {
			continue
		}
		if len(info.EventTypes) == 0 {
			return "observer(*)", true
		}
		types := append([]string(nil), info.EventTypes...)
		sort.Strings(types)
		return "observer(" + strings.Join(types, ",") + ")", true
	}
	return "", false
}

// findInFields walks the struct behind v level by level. Embedded structs make
// up the next level, the way a base type would in an inheritance hierarchy.
func findInFields(v reflect.Value, listener any) (string, bool) {
	level := []reflect.Value{v}
	seen := make(map[reflect.Type]bool)

	for len(level) > 0 {
		var next []reflect.Value
		for _, current := range level {
			current = indirect(current)
			if !current.IsValid() || current.Kind() != reflect.Struct || seen[current.Type()] {
				continue
			}
			seen[current.Type()] = true

			structType := current.Type()
			for i := 0; i < current.NumField(); i++ {
				field := current.Field(i)
				fieldType := structType.Field(i)
				if !fieldType.IsExported() {
					// Exported fields promoted through an unexported
					// embedded struct are still reachable.
					if fieldType.Anonymous {
						next = append(next, field)
					}
					continue
				}

				if inspector, ok := asInspector(field); ok {
					if inspector.HasListener(listener) {
						return fieldType.Name, true
					}
					continue
				}

				if fieldType.Anonymous {
					next = append(next, field)
				}
			}
		}
		level = next
	}
	return "", false
}

func asInspector(field reflect.Value) (ChannelInspector, bool) {
	if !field.CanInterface() {
		return nil, false
	}
	switch field.Kind() {
	case reflect.Interface:
		if field.IsNil() {
			return nil, false
		}
		inspector, ok := field.Interface().(ChannelInspector)
		return inspector, ok
	case reflect.Pointer:
		if field.IsNil() {
			return nil, false
		}
	}
	if field.Type().Implements(inspectorType) {
		inspector, ok := field.Interface().(ChannelInspector)
		return inspector, ok
	}
	if field.CanAddr() && field.Addr().Type().Implements(inspectorType) {
		inspector, ok := field.Addr().Interface().(ChannelInspector)
		return inspector, ok
	}
	return nil, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
