// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import "strings"

// Tier is the detail level of built records.
type Tier string

// Response resolutions.
const (
	TierUnknown Tier = "Unknown"
	TierLow     Tier = "Low"
	TierMedium  Tier = "Medium"
	TierHigh    Tier = "High"
)

// ParseTier returns the tier with the given name, ignoring case.
func ParseTier(name string) (Tier, bool) {
	for _, t := range []Tier{TierLow, TierMedium, TierHigh, TierUnknown} {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return TierUnknown, false
}
