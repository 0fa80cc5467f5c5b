// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package trace provides the append-only session log behind the engine.
package trace

// Store is an append-only ordered log with a report cursor and a counter of
// entries appended since the last report.
//
// Store does no locking of its own; the owner serializes access so that a
// sequence such as append-then-check-counter stays atomic.
type Store[T any] struct {
	items   []T
	cursor  int
	pending int
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make([]T, 0)}
}

// Append adds item to the end of the log and returns the number of entries
// appended since the last call to Advance.
func (s *Store[T]) Append(item T) int {
	s.items = append(s.items, item)
	s.pending++
	return s.pending
}

// Len returns the number of entries in the log.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Pending returns the number of entries appended since the last Advance.
func (s *Store[T]) Pending() int {
	return s.pending
}

// Snapshot returns a copy of the whole log.
func (s *Store[T]) Snapshot() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Filter returns a copy of the entries for which keep returns true, in log order.
func (s *Store[T]) Filter(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Advance returns a copy of the entries added since the previous Advance,
// moves the cursor to the end of the log and resets the pending counter.
// Two consecutive calls with no Append between them return an empty slice
// the second time.
func (s *Store[T]) Advance() []T {
	fresh := make([]T, len(s.items)-s.cursor)
	copy(fresh, s.items[s.cursor:])
	s.cursor = len(s.items)
	s.pending = 0
	return fresh
}

// Cursor returns the index of the first entry not yet returned by Advance.
func (s *Store[T]) Cursor() int {
	return s.cursor
}
