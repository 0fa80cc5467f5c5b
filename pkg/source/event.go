// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package source delivers error events to the engine: an in-process target
// that application code dispatches to, a panic guard, and a file feed.
package source

import "sync/atomic"

// Category is the native category of a captured error, before classification.
type Category string

// Native categories.
const (
	CategoryReference Category = "ReferenceError"
	CategorySyntax    Category = "SyntaxError"
	CategoryType      Category = "TypeError"
	CategoryRange     Category = "RangeError"
	CategoryEval      Category = "EvalError"
	CategoryURI       Category = "URIError"
	CategoryError     Category = "Error"
	CategoryEmitted   Category = "EmittedError"
)

// Element identifies what an error was raised on.
type Element struct {
	Name    string   `json:"name"`
	Classes []string `json:"classes,omitempty"`
	ID      string   `json:"id,omitempty"`
}

// Window is the element representing the whole application scope.
var Window = Element{Name: "window"}

// ErrorEvent is a single captured error. It lives only for the duration of
// its dispatch.
type ErrorEvent struct {
	Message  string         `json:"message"`
	Filename string         `json:"filename"`
	Line     int            `json:"lineno"`
	Column   int            `json:"colno"`
	Category Category       `json:"category"`
	Target   *Element       `json:"target,omitempty"`
	Payload  map[string]any `json:"customData,omitempty"`

	// Err is the underlying error or panic value, when there is one.
	Err any `json:"-"`

	emitted   bool
	prevented atomic.Bool
}

// NewEmittedEvent builds an event for an error raised by hand rather than
// caught at runtime.
func NewEmittedEvent(message, filename string, line, column int, payload map[string]any) *ErrorEvent {
	return &ErrorEvent{
		Message:  message,
		Filename: filename,
		Line:     line,
		Column:   column,
		Category: CategoryEmitted,
		Payload:  payload,
		emitted:  true,
	}
}

// Emitted reports whether the event was built by NewEmittedEvent.
func (e *ErrorEvent) Emitted() bool {
	return e.emitted
}

// PreventDefault asks the source to skip its default handling of the
// error. For a guarded panic this means the panic is not re-raised.
func (e *ErrorEvent) PreventDefault() {
	e.prevented.Store(true)
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *ErrorEvent) DefaultPrevented() bool {
	return e.prevented.Load()
}
