// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"runtime"
	"strings"

	"github.com/wingedpig/sieve/internal/events"
)

// Handler receives dispatched error events.
type Handler func(ev *ErrorEvent)

// Target is anything error events can be subscribed to and dispatched on.
type Target interface {
	// Listen registers h for every event dispatched on the target. The
	// returned function removes the registration.
	Listen(h Handler) (cancel func(), err error)

	// Dispatch delivers ev to every registered handler, synchronously and
	// in registration order.
	Dispatch(ev *ErrorEvent)
}

// Bus is the in-process Target. Events dispatched without a target element
// are attributed to the bus's own element.
type Bus struct {
	element Element
	signal  *events.Signal[*ErrorEvent]
}

// NewBus creates a bus for the whole application scope.
func NewBus() *Bus {
	return NewElementBus(Window)
}

// NewElementBus creates a bus scoped to a single element.
func NewElementBus(el Element) *Bus {
	return &Bus{
		element: el,
		signal:  events.NewSignal[*ErrorEvent](),
	}
}

// Element returns the element the bus represents.
func (b *Bus) Element() Element {
	return b.element
}

// Listen implements Target.
func (b *Bus) Listen(h Handler) (func(), error) {
	id, err := b.signal.Add(events.Handler[*ErrorEvent](h))
	if err != nil {
		return nil, err
	}
	return func() { _ = b.signal.Remove(id) }, nil
}

// Dispatch implements Target.
func (b *Bus) Dispatch(ev *ErrorEvent) {
	if ev == nil {
		return
	}
	if ev.Target == nil {
		el := b.element
		ev.Target = &el
	}
	b.signal.Emit(ev)
}

// Listeners returns the number of registered handlers.
func (b *Bus) Listeners() int {
	return b.signal.Len()
}

// Close removes all handlers. Events dispatched afterwards are dropped.
func (b *Bus) Close() {
	b.signal.Close()
}

// Capture dispatches a returned error as an event attributed to the caller.
// It returns the dispatched event, or nil when err is nil.
func (b *Bus) Capture(err error) *ErrorEvent {
	if err == nil {
		return nil
	}

	ev := &ErrorEvent{
		Message:  err.Error(),
		Category: CategoryOf(err),
		Err:      err,
	}
	if _, file, line, ok := runtime.Caller(1); ok {
		ev.Filename = file
		ev.Line = line
	}

	b.Dispatch(ev)
	return ev
}

// Guard runs fn. If fn panics, the panic is dispatched as an event and then
// re-raised unless a handler called PreventDefault on the event.
func (b *Bus) Guard(fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		ev := &ErrorEvent{
			Message:  messageOf(r),
			Category: CategoryOf(r),
			Err:      r,
		}
		ev.Filename, ev.Line = panicSite()

		b.Dispatch(ev)
		if !ev.DefaultPrevented() {
			panic(r)
		}
	}()

	fn()
}

// panicSite returns the file and line of the frame that panicked. While a
// deferred function runs the panicking frames are still on the stack, above
// runtime.gopanic.
func panicSite() (string, int) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	seenPanic := false
	for {
		frame, more := frames.Next()
		if seenPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return frame.File, frame.Line
		}
		if frame.Function == "runtime.gopanic" {
			seenPanic = true
		}
		if !more {
			break
		}
	}
	return "", 0
}
