// Package settings is the typed registry shared by every component.
//
// A Settings value is created once at startup and passed by pointer. Each
// setting group is a plain struct keyed by its Go type. Values are copied in
// and out of the store; a group with slice or map fields implements Cloner so
// those copies are deep.
package settings

import (
	"reflect"
	"sync"
)

// Settings maps setting group types to their current values.
type Settings struct {
	mu     sync.RWMutex
	values map[reflect.Type]any
}

// New returns an empty store.
func New() *Settings {
	return &Settings{values: make(map[reflect.Type]any)}
}

// Cloner is implemented by setting groups that hold reference types.
type Cloner[T any] interface {
	Clone() T
}

func cloned[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

func keyOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Register stores initial for T unless a value is already registered.
func Register[T any](s *Settings, initial T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf[T]()
	if _, ok := s.values[key]; ok {
		return
	}
	s.values[key] = cloned(initial)
}

// Get returns the value for T, or T's zero value when nothing is registered.
func Get[T any](s *Settings) T {
	v, _ := Lookup[T](s)
	return v
}

// Lookup returns the value for T and whether it was registered.
func Lookup[T any](s *Settings) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[keyOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return cloned(v.(T)), true
}

// Set replaces the value for T, registering it if needed.
func Set[T any](s *Settings, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[keyOf[T]()] = cloned(v)
}

// Update applies fn to the current value for T under the write lock.
func Update[T any](s *Settings, fn func(*T)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyOf[T]()
	var current T
	if v, ok := s.values[key]; ok {
		current = v.(T)
	}
	current = cloned(current)
	fn(&current)
	s.values[key] = current
}

// Registered reports whether a value for T exists.
func Registered[T any](s *Settings) bool {
	_, ok := Lookup[T](s)
	return ok
}
