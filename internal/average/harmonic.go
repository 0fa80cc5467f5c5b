// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package average provides the averaging helpers used for report timing.
package average

// Harmonic returns the harmonic mean n / Σ(1/x) of values.
// It returns 0 for an empty slice or when any value is exactly zero,
// since a zero interval has no finite reciprocal.
func Harmonic(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		if v == 0 {
			return 0
		}
		sum += 1 / v
	}

	return float64(len(values)) / sum
}
