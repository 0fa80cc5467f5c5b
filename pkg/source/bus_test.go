// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DispatchInOrder(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var order []string
	_, err := bus.Listen(func(ev *ErrorEvent) { order = append(order, "a:"+ev.Message) })
	require.NoError(t, err)
	_, err = bus.Listen(func(ev *ErrorEvent) { order = append(order, "b:"+ev.Message) })
	require.NoError(t, err)

	bus.Dispatch(&ErrorEvent{Message: "x"})

	assert.Equal(t, []string{"a:x", "b:x"}, order)
	assert.Equal(t, 2, bus.Listeners())
}

func TestBus_DispatchDefaultsTarget(t *testing.T) {
	bus := NewElementBus(Element{Name: "button", Classes: []string{"primary"}, ID: "save"})

	var got *ErrorEvent
	_, err := bus.Listen(func(ev *ErrorEvent) { got = ev })
	require.NoError(t, err)

	bus.Dispatch(&ErrorEvent{Message: "x"})
	require.NotNil(t, got.Target)
	assert.Equal(t, "button", got.Target.Name)
	assert.Equal(t, "save", got.Target.ID)

	custom := &Element{Name: "img"}
	bus.Dispatch(&ErrorEvent{Message: "y", Target: custom})
	assert.Same(t, custom, got.Target)
}

func TestBus_DispatchNil(t *testing.T) {
	bus := NewBus()
	called := false
	_, _ = bus.Listen(func(*ErrorEvent) { called = true })

	bus.Dispatch(nil)
	assert.False(t, called)
}

func TestBus_ListenCancel(t *testing.T) {
	bus := NewBus()

	count := 0
	cancel, err := bus.Listen(func(*ErrorEvent) { count++ })
	require.NoError(t, err)

	bus.Dispatch(&ErrorEvent{})
	cancel()
	cancel()
	bus.Dispatch(&ErrorEvent{})

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, bus.Listeners())
}

func TestBus_Close(t *testing.T) {
	bus := NewBus()
	called := false
	_, _ = bus.Listen(func(*ErrorEvent) { called = true })

	bus.Close()
	bus.Dispatch(&ErrorEvent{})
	assert.False(t, called)

	_, err := bus.Listen(func(*ErrorEvent) {})
	assert.Error(t, err)
}

func TestBus_Capture(t *testing.T) {
	bus := NewBus()

	var got *ErrorEvent
	_, _ = bus.Listen(func(ev *ErrorEvent) { got = ev })

	_, parseErr := strconv.Atoi("abc")
	ev := bus.Capture(parseErr)

	require.NotNil(t, got)
	assert.Same(t, ev, got)
	assert.Equal(t, CategorySyntax, got.Category)
	assert.Contains(t, got.Message, "invalid syntax")
	assert.True(t, strings.HasSuffix(got.Filename, "bus_test.go"))
	assert.Greater(t, got.Line, 0)
	assert.False(t, got.Emitted())

	assert.Nil(t, bus.Capture(nil))
}

func TestBus_GuardNoPanic(t *testing.T) {
	bus := NewBus()
	called := false
	_, _ = bus.Listen(func(*ErrorEvent) { called = true })

	ran := false
	bus.Guard(func() { ran = true })

	assert.True(t, ran)
	assert.False(t, called)
}

func TestBus_GuardRepanics(t *testing.T) {
	bus := NewBus()

	var got *ErrorEvent
	_, _ = bus.Listen(func(ev *ErrorEvent) { got = ev })

	assert.PanicsWithValue(t, "boom", func() {
		bus.Guard(func() { panic("boom") })
	})

	require.NotNil(t, got)
	assert.Equal(t, "boom", got.Message)
	assert.Equal(t, CategoryError, got.Category)
	assert.Equal(t, "boom", got.Err)
}

func TestBus_GuardPreventDefault(t *testing.T) {
	bus := NewBus()

	var got *ErrorEvent
	_, _ = bus.Listen(func(ev *ErrorEvent) {
		got = ev
		ev.PreventDefault()
	})

	assert.NotPanics(t, func() {
		bus.Guard(func() {
			var m map[string]int
			var p *struct{ n int }
			m["x"] = p.n
		})
	})

	require.NotNil(t, got)
	assert.Equal(t, CategoryReference, got.Category)
	assert.True(t, got.DefaultPrevented())
	assert.True(t, strings.HasSuffix(got.Filename, "bus_test.go"), got.Filename)
	assert.Greater(t, got.Line, 0)
}

func TestBus_GuardErrorValue(t *testing.T) {
	bus := NewBus()

	var got *ErrorEvent
	_, _ = bus.Listen(func(ev *ErrorEvent) { got = ev; ev.PreventDefault() })

	sentinel := errors.New("bad state")
	bus.Guard(func() { panic(sentinel) })

	require.NotNil(t, got)
	assert.Equal(t, "bad state", got.Message)
	assert.Equal(t, sentinel, got.Err)
}

func TestNewEmittedEvent(t *testing.T) {
	ev := NewEmittedEvent("boom", "app.go", 3, 7, map[string]any{"a": 1})

	assert.True(t, ev.Emitted())
	assert.Equal(t, CategoryEmitted, ev.Category)
	assert.Equal(t, "app.go", ev.Filename)
	assert.Equal(t, 3, ev.Line)
	assert.Equal(t, 7, ev.Column)
	assert.Equal(t, 1, ev.Payload["a"])
	assert.False(t, ev.DefaultPrevented())
}
