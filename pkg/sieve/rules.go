// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"regexp"
	"strings"
)

// Rule matches error messages. A literal rule is compiled as a regular
// expression each time it is evaluated; if it does not compile it matches
// as a plain substring.
type Rule struct {
	literal string
	re      *regexp.Regexp
}

// Literal creates a rule from a pattern string.
func Literal(pattern string) Rule {
	return Rule{literal: pattern}
}

// Pattern creates a rule from a compiled expression.
func Pattern(re *regexp.Regexp) Rule {
	return Rule{re: re}
}

// MustPattern compiles expr and panics if it is invalid.
func MustPattern(expr string) Rule {
	return Pattern(regexp.MustCompile(expr))
}

// Literals creates one literal rule per pattern.
func Literals(patterns ...string) []Rule {
	rules := make([]Rule, len(patterns))
	for i, p := range patterns {
		rules[i] = Literal(p)
	}
	return rules
}

// Match reports whether message matches the rule.
func (r Rule) Match(message string) bool {
	if r.re != nil {
		return r.re.MatchString(message)
	}
	re, err := regexp.Compile(r.literal)
	if err != nil {
		return strings.Contains(message, r.literal)
	}
	return re.MatchString(message)
}

// String returns the rule's pattern.
func (r Rule) String() string {
	if r.re != nil {
		return r.re.String()
	}
	return r.literal
}

// matchAny reports whether any rule matches message.
func matchAny(rules []Rule, message string) bool {
	for _, r := range rules {
		if r.Match(message) {
			return true
		}
	}
	return false
}
