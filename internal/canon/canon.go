// Package canon implements the case-insensitive, original-casing-
// preserving name canonicalisation used throughout the runtime state
// store: identifiers compare case-insensitively but keep the spelling
// they were first declared with.
package canon

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var foldCaser = cases.Upper(language.Und)

// Fold returns the case-folded comparison key for name. Two names with
// the same Fold are the same identifier.
func Fold(name string) string {
	return foldCaser.String(name)
}

// Map is a generic store keyed by Fold(name) that remembers the casing
// the key was first inserted with, mirroring how IEC 61131-3 identifiers
// are case-insensitive but conventionally displayed as written.
type Map[T any] struct {
	entries map[string]entry[T]
}

type entry[T any] struct {
	original string
	value    T
}

// NewMap creates an empty Map.
func NewMap[T any]() *Map[T] {
	return &Map[T]{entries: make(map[string]entry[T])}
}

// Set stores value under name, preserving the casing of the first Set
// call for that fold key.
func (m *Map[T]) Set(name string, value T) {
	key := Fold(name)
	e, exists := m.entries[key]
	original := name
	if exists {
		original = e.original
	}
	m.entries[key] = entry[T]{original: original, value: value}
}

// Get retrieves the value stored under name, case-insensitively.
func (m *Map[T]) Get(name string) (T, bool) {
	e, ok := m.entries[Fold(name)]
	return e.value, ok
}

// Has reports whether name (case-insensitively) has an entry.
func (m *Map[T]) Has(name string) bool {
	_, ok := m.entries[Fold(name)]
	return ok
}

// OriginalName returns the casing the name was first declared with, or
// name unchanged if it has no entry.
func (m *Map[T]) OriginalName(name string) string {
	if e, ok := m.entries[Fold(name)]; ok {
		return e.original
	}
	return name
}

// Range iterates entries in unspecified order, yielding each entry's
// original casing and value.
func (m *Map[T]) Range(fn func(name string, value T)) {
	for _, e := range m.entries {
		fn(e.original, e.value)
	}
}

// Len returns the number of entries.
func (m *Map[T]) Len() int { return len(m.entries) }
