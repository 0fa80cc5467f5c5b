// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"math"
	"net/url"
	"time"

	"github.com/wingedpig/sieve/internal/average"
)

// Report summarizes the records accumulated since the previous report.
type Report struct {
	ErrorsTotalAmount int           `json:"errorsTotalAmount"`
	Resolution        Tier          `json:"resolution"`
	NewErrors         []Record      `json:"newErrors"`
	Sign              string        `json:"sign"`
	HasPanic          bool          `json:"hasPanic"`
	Host              string        `json:"host"`
	AverageDeltaTime  time.Duration `json:"averageDeltaTime"`
}

// averageDelta is the harmonic mean of the records' deltas, skipping the
// first record of the window, rounded to the millisecond. It is zero for the
// Low tier and for an empty window.
func averageDelta(tier Tier, fresh []Record) time.Duration {
	if tier == TierLow || len(fresh) == 0 {
		return 0
	}

	deltas := make([]float64, 0, len(fresh)-1)
	for _, rec := range fresh[1:] {
		d, _ := rec.Delta()
		deltas = append(deltas, float64(d)/float64(time.Millisecond))
	}

	return time.Duration(math.Round(average.Harmonic(deltas))) * time.Millisecond
}

func anyPanic(records []Record) bool {
	for _, rec := range records {
		if rec.Panic() {
			return true
		}
	}
	return false
}

// originOf returns scheme://host of rawURL, or "" if it has none.
func originOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
