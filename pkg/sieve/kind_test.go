// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wingedpig/sieve/pkg/source"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		category source.Category
		want     Kind
	}{
		{source.CategoryReference, KindReference},
		{source.CategorySyntax, KindSyntax},
		{source.CategoryType, KindType},
		{source.CategoryRange, KindRange},
		{source.CategoryEval, KindEval},
		{source.CategoryURI, KindURI},
		{source.CategoryError, KindUnknown},
		{source.CategoryEmitted, KindUnknown},
		{source.Category("InternalError"), KindUnknown},
		{source.Category(""), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.category))
		})
	}
}

func TestParseKind(t *testing.T) {
	kind, ok := ParseKind("uri")
	assert.True(t, ok)
	assert.Equal(t, KindURI, kind)

	kind, ok = ParseKind("ByEmit")
	assert.True(t, ok)
	assert.Equal(t, KindByEmit, kind)

	kind, ok = ParseKind("Fatal")
	assert.False(t, ok)
	assert.Equal(t, KindUnknown, kind)
}

func TestParseTier(t *testing.T) {
	tier, ok := ParseTier("high")
	assert.True(t, ok)
	assert.Equal(t, TierHigh, tier)

	_, ok = ParseTier("Ultra")
	assert.False(t, ok)
}
