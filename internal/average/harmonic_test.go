// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package average

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHarmonic(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"two values", []float64{2, 4}, 8.0 / 3.0},
		{"equal values", []float64{3, 3, 3}, 3},
		{"zero anywhere", []float64{2, 0, 4}, 0},
		{"zero first", []float64{0, 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Harmonic(tt.values), 1e-9)
		})
	}
}

func TestHarmonic_FavorsShortIntervals(t *testing.T) {
	values := []float64{1, 100}
	arithmetic := (values[0] + values[1]) / 2
	assert.Less(t, Harmonic(values), arithmetic)
}
