// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"maps"

	"github.com/wingedpig/sieve/pkg/platform"
	"github.com/wingedpig/sieve/pkg/source"
)

// InnerReport is everything known about an error before a tier is applied.
type InnerReport struct {
	Sign       string
	HasPanic   bool
	General    GeneralData
	CustomData map[string]any
	URL        string
	Platform   PlatformData
	Time       TimeData
	Viewport   platform.Viewport
	Target     TargetData
}

// Build shapes in into a record of the given tier. Unknown or unrecognized
// tiers produce a LowRecord.
func Build(tier Tier, in InnerReport) Record {
	header := Header{
		Sign:             in.Sign,
		HasPanic:         in.HasPanic,
		ErrorGeneralData: in.General,
		CustomData:       maps.Clone(in.CustomData),
		URL:              in.URL,
	}

	switch tier {
	case TierHigh:
		header.Tier = TierHigh
		return HighRecord{
			Header:          header,
			TimeData:        in.Time,
			ErrorTargetData: cloneTarget(in.Target),
			PlatformData:    in.Platform,
			ViewportData:    in.Viewport,
		}
	case TierMedium:
		header.Tier = TierMedium
		return MediumRecord{
			Header:          header,
			TimeData:        in.Time,
			ErrorTargetData: cloneTarget(in.Target),
		}
	default:
		header.Tier = TierLow
		return LowRecord{
			Header:    header,
			Timestamp: in.Time.Timestamp,
		}
	}
}

// TargetDataOf converts an event element to record target data.
func TargetDataOf(el *source.Element) TargetData {
	td := TargetData{TargetHTMLClassNames: []string{}}
	if el == nil {
		return td
	}
	if el.Name != "" {
		name := el.Name
		td.TargetName = &name
	}
	td.TargetHTMLClassNames = append(td.TargetHTMLClassNames, el.Classes...)
	if el.ID != "" {
		id := el.ID
		td.TargetHTMLID = &id
	}
	return td
}

func cloneTarget(td TargetData) TargetData {
	out := td
	out.TargetHTMLClassNames = append([]string{}, td.TargetHTMLClassNames...)
	return out
}
