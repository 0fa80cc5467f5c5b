// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRule_Match(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		message string
		want    bool
	}{
		{name: "literal substring", rule: Literal("timeout"), message: "request timeout after 5s", want: true},
		{name: "literal miss", rule: Literal("timeout"), message: "connection reset", want: false},
		{name: "literal as expression", rule: Literal(`^Script error\.$`), message: "Script error.", want: true},
		{name: "literal anchored miss", rule: Literal(`^Script`), message: "a Script error", want: false},
		{name: "invalid expression falls back to substring", rule: Literal("foo("), message: "call foo(1)", want: true},
		{name: "invalid expression miss", rule: Literal("foo("), message: "call bar(1)", want: false},
		{name: "compiled pattern", rule: Pattern(regexp.MustCompile(`(?i)out of memory`)), message: "Out Of Memory", want: true},
		{name: "must pattern", rule: MustPattern(`\d{3}`), message: "status 503", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Match(tt.message))
		})
	}
}

func TestRule_String(t *testing.T) {
	assert.Equal(t, "foo(", Literal("foo(").String())
	assert.Equal(t, `\d+`, MustPattern(`\d+`).String())
}

func TestLiterals(t *testing.T) {
	rules := Literals("a", "b")
	assert.Len(t, rules, 2)
	assert.Equal(t, "b", rules[1].String())
	assert.Empty(t, Literals())
}

func TestMatchAny(t *testing.T) {
	rules := Literals("fatal", "panic")

	assert.True(t, matchAny(rules, "kernel panic"))
	assert.False(t, matchAny(rules, "warning"))
	assert.False(t, matchAny(nil, "fatal"))
}

func TestMustPattern_Invalid(t *testing.T) {
	assert.Panics(t, func() { MustPattern("(") })
}
