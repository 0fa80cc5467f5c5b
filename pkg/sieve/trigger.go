// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"strings"
	"time"
)

// TriggerKind selects the condition that emits an automatic report.
type TriggerKind string

// Trigger kinds.
const (
	TriggerUnknown        TriggerKind = "Unknown"
	TriggerTimeInterval   TriggerKind = "TimeInterval"
	TriggerErrorsQuantity TriggerKind = "ErrorsQuantity"
	TriggerPanic          TriggerKind = "Panic"
)

// ParseTriggerKind returns the trigger kind with the given name, ignoring case.
func ParseTriggerKind(name string) (TriggerKind, bool) {
	for _, k := range []TriggerKind{TriggerTimeInterval, TriggerErrorsQuantity, TriggerPanic, TriggerUnknown} {
		if strings.EqualFold(string(k), name) {
			return k, true
		}
	}
	return TriggerUnknown, false
}

// Trigger is an automatic report condition. Value is the interval in
// milliseconds for TimeInterval, the error count for ErrorsQuantity and
// unused for Panic.
type Trigger struct {
	Kind  TriggerKind `json:"type"`
	Value int64       `json:"value"`
}

// NewTrigger creates a trigger. Negative values are treated as zero.
func NewTrigger(kind TriggerKind, value int64) Trigger {
	if value < 0 {
		value = 0
	}
	return Trigger{Kind: kind, Value: value}
}

// IntervalTrigger reports every d.
func IntervalTrigger(d time.Duration) Trigger {
	return NewTrigger(TriggerTimeInterval, d.Milliseconds())
}

// QuantityTrigger reports once n errors have accumulated since the last report.
func QuantityTrigger(n int) Trigger {
	return NewTrigger(TriggerErrorsQuantity, int64(n))
}

// PanicTrigger reports after every panic-flagged error.
func PanicTrigger() Trigger {
	return NewTrigger(TriggerPanic, 0)
}

// Interval returns Value as a duration in milliseconds.
func (t Trigger) Interval() time.Duration {
	return time.Duration(t.Value) * time.Millisecond
}

// triggerSet holds at most one trigger per kind.
type triggerSet struct {
	byKind map[TriggerKind]Trigger
}

// newTriggerSet keeps the first trigger of each known kind.
func newTriggerSet(triggers []Trigger) triggerSet {
	set := triggerSet{byKind: make(map[TriggerKind]Trigger)}
	for _, t := range triggers {
		switch t.Kind {
		case TriggerTimeInterval, TriggerErrorsQuantity, TriggerPanic:
		default:
			continue
		}
		if _, ok := set.byKind[t.Kind]; !ok {
			set.byKind[t.Kind] = t
		}
	}
	return set
}

func (s triggerSet) get(kind TriggerKind) (Trigger, bool) {
	t, ok := s.byKind[kind]
	return t, ok
}

// interval returns the configured report interval.
func (s triggerSet) interval() (time.Duration, bool) {
	t, ok := s.get(TriggerTimeInterval)
	if !ok {
		return 0, false
	}
	return t.Interval(), true
}

// quantityReached reports whether pending errors satisfy the quantity trigger.
func (s triggerSet) quantityReached(pending int) bool {
	t, ok := s.get(TriggerErrorsQuantity)
	return ok && int64(pending) >= t.Value
}

func (s triggerSet) onPanic() bool {
	_, ok := s.get(TriggerPanic)
	return ok
}

// list returns the honored triggers.
func (s triggerSet) list() []Trigger {
	out := make([]Trigger, 0, len(s.byKind))
	for _, kind := range []TriggerKind{TriggerTimeInterval, TriggerErrorsQuantity, TriggerPanic} {
		if t, ok := s.byKind[kind]; ok {
			out = append(out, t)
		}
	}
	return out
}
