// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package events provides ordered, synchronous observer registries.
package events

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// ErrSignalClosed is returned when subscribing to a closed signal.
var ErrSignalClosed = errors.New("signal is closed")

// ErrSubscriptionNotFound is returned when removing with an invalid ID.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionID uniquely identifies a subscription.
type SubscriptionID string

// Handler receives values emitted on a signal.
type Handler[T any] func(T)

type subscription[T any] struct {
	id      SubscriptionID
	handler Handler[T]
}

// Signal is a list of handlers invoked synchronously, in subscription order,
// for every emitted value. Handlers are not shielded: a panicking handler
// propagates to the caller of Emit and later handlers are skipped.
type Signal[T any] struct {
	mu     sync.RWMutex
	subs   []subscription[T]
	closed atomic.Bool
}

// NewSignal creates an empty signal.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Add registers handler and returns its subscription ID.
func (s *Signal[T]) Add(handler Handler[T]) (SubscriptionID, error) {
	if s.closed.Load() {
		return "", ErrSignalClosed
	}
	if handler == nil {
		return "", errors.New("nil handler")
	}

	id := SubscriptionID(uuid.NewString())

	s.mu.Lock()
	s.subs = append(s.subs, subscription[T]{id: id, handler: handler})
	s.mu.Unlock()

	return id, nil
}

// Remove unregisters the subscription with the given ID.
func (s *Signal[T]) Remove(id SubscriptionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Has reports whether id is a live subscription.
func (s *Signal[T]) Has(id SubscriptionID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subs {
		if sub.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (s *Signal[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Emit calls every registered handler with value. The handler list is
// snapshotted first, so handlers may add or remove subscriptions.
func (s *Signal[T]) Emit(value T) {
	if s.closed.Load() {
		return
	}

	s.mu.RLock()
	subs := make([]subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(value)
	}
}

// Close drops all handlers. Later Emit calls are no-ops and Add fails.
func (s *Signal[T]) Close() {
	if s.closed.Swap(true) {
		return
	}

	s.mu.Lock()
	s.subs = nil
	s.mu.Unlock()
}
