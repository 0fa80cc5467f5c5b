// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"strings"

	"github.com/wingedpig/sieve/pkg/source"
)

// Kind is the classification of a captured error.
type Kind string

// Error kinds.
const (
	KindReference Kind = "Reference"
	KindSyntax    Kind = "Syntax"
	KindType      Kind = "Type"
	KindRange     Kind = "Range"
	KindEval      Kind = "Eval"
	KindURI       Kind = "Uri"
	KindByEmit    Kind = "ByEmit"
	KindUnknown   Kind = "Unknown"
)

// Kinds lists every kind.
var Kinds = []Kind{
	KindReference, KindSyntax, KindType, KindRange, KindEval, KindURI, KindByEmit, KindUnknown,
}

var categoryKinds = map[source.Category]Kind{
	source.CategoryReference: KindReference,
	source.CategorySyntax:    KindSyntax,
	source.CategoryType:      KindType,
	source.CategoryRange:     KindRange,
	source.CategoryEval:      KindEval,
	source.CategoryURI:       KindURI,
}

// Classify maps a native category to a kind. Unrecognized categories,
// including source.CategoryEmitted, map to KindUnknown; emitted errors are
// tagged ByEmit by the engine from the event itself.
func Classify(category source.Category) Kind {
	if kind, ok := categoryKinds[category]; ok {
		return kind
	}
	return KindUnknown
}

// ParseKind returns the kind with the given name, ignoring case.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds {
		if strings.EqualFold(string(k), name) {
			return k, true
		}
	}
	return KindUnknown, false
}
