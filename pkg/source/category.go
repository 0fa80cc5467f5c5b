// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp/syntax"
	"runtime"
	"strconv"
	"strings"
	"text/template"
)

// CategoryOf maps a Go error or panic value to its native category.
func CategoryOf(v any) Category {
	err, ok := v.(error)
	if !ok {
		return CategoryError
	}

	var typeAssert *runtime.TypeAssertionError
	if errors.As(err, &typeAssert) {
		return CategoryType
	}

	var rtErr runtime.Error
	if errors.As(err, &rtErr) {
		return runtimeCategory(rtErr.Error())
	}

	var (
		jsonSyntax  *json.SyntaxError
		jsonType    *json.UnmarshalTypeError
		numErr      *strconv.NumError
		regexpErr   *syntax.Error
		urlErr      *url.Error
		escapeErr   url.EscapeError
		hostErr     url.InvalidHostError
		templateErr template.ExecError
	)
	switch {
	case errors.As(err, &jsonSyntax), errors.As(err, &regexpErr):
		return CategorySyntax
	case errors.As(err, &numErr):
		if errors.Is(numErr.Err, strconv.ErrRange) {
			return CategoryRange
		}
		return CategorySyntax
	case errors.As(err, &jsonType):
		return CategoryType
	case errors.As(err, &urlErr), errors.As(err, &escapeErr), errors.As(err, &hostErr):
		return CategoryURI
	case errors.As(err, &templateErr):
		return CategoryEval
	}

	return CategoryError
}

func runtimeCategory(msg string) Category {
	switch {
	case strings.Contains(msg, "nil pointer dereference"),
		strings.Contains(msg, "invalid memory address"),
		strings.Contains(msg, "nil map"):
		return CategoryReference
	case strings.Contains(msg, "out of range"),
		strings.Contains(msg, "divide by zero"):
		return CategoryRange
	default:
		return CategoryError
	}
}

// messageOf renders an error or panic value as a message.
func messageOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case error:
		return x.Error()
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
