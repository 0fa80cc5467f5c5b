// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"time"

	"github.com/wingedpig/sieve/pkg/platform"
)

// Record is an immutable description of one accepted error. It is one of
// LowRecord, MediumRecord or HighRecord; Resolution reports which.
//
//	switch r := rec.(type) {
//	case sieve.LowRecord:
//	case sieve.MediumRecord:
//	case sieve.HighRecord:
//	}
type Record interface {
	// Resolution is the tier the record was built with.
	Resolution() Tier
	// General returns the message, kind and source position.
	General() GeneralData
	// Panic reports whether the message matched a panic rule.
	Panic() bool
	// Time returns when the error was captured.
	Time() time.Time
	// Delta returns the time since the previous record. Low records carry
	// no delta and return false.
	Delta() (time.Duration, bool)

	isRecord()
}

// GeneralData describes the error itself.
type GeneralData struct {
	Message  string `json:"message"`
	Type     Kind   `json:"type"`
	FileName string `json:"fileName"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// TimeData holds capture timing.
type TimeData struct {
	Timestamp time.Time     `json:"timestamp"`
	TimeDelta time.Duration `json:"timeDelta"`
}

// TargetData identifies what the error was raised on. Name and ID are nil
// when unknown.
type TargetData struct {
	TargetName           *string  `json:"targetName"`
	TargetHTMLClassNames []string `json:"targetHtmlClassNames"`
	TargetHTMLID         *string  `json:"targetHtmlId"`
}

// PlatformData describes the software and hardware.
type PlatformData struct {
	Software platform.Software `json:"software"`
	Hardware platform.Hardware `json:"hardware"`
}

// Header holds the fields every record carries. Resolution is the explicit
// discriminant; CustomData encodes as null when absent.
type Header struct {
	Tier             Tier           `json:"resolution"`
	Sign             string         `json:"sign"`
	HasPanic         bool           `json:"hasPanic"`
	ErrorGeneralData GeneralData    `json:"errorGeneralData"`
	CustomData       map[string]any `json:"customData"`
	URL              string         `json:"url"`
}

// Resolution implements Record.
func (h Header) Resolution() Tier { return h.Tier }

// General implements Record.
func (h Header) General() GeneralData { return h.ErrorGeneralData }

// Panic implements Record.
func (h Header) Panic() bool { return h.HasPanic }

// LowRecord carries the header and a timestamp.
type LowRecord struct {
	Header
	Timestamp time.Time `json:"timestamp"`
}

// Time implements Record.
func (r LowRecord) Time() time.Time { return r.Timestamp }

// Delta implements Record.
func (r LowRecord) Delta() (time.Duration, bool) { return 0, false }

func (LowRecord) isRecord() {}

// MediumRecord adds timing and target identity.
type MediumRecord struct {
	Header
	TimeData        TimeData   `json:"timeData"`
	ErrorTargetData TargetData `json:"errorTargetData"`
}

// Time implements Record.
func (r MediumRecord) Time() time.Time { return r.TimeData.Timestamp }

// Delta implements Record.
func (r MediumRecord) Delta() (time.Duration, bool) { return r.TimeData.TimeDelta, true }

func (MediumRecord) isRecord() {}

// HighRecord adds platform and viewport data to a medium record.
type HighRecord struct {
	Header
	TimeData        TimeData          `json:"timeData"`
	ErrorTargetData TargetData        `json:"errorTargetData"`
	PlatformData    PlatformData      `json:"platformData"`
	ViewportData    platform.Viewport `json:"viewportData"`
}

// Time implements Record.
func (r HighRecord) Time() time.Time { return r.TimeData.Timestamp }

// Delta implements Record.
func (r HighRecord) Delta() (time.Duration, bool) { return r.TimeData.TimeDelta, true }

func (HighRecord) isRecord() {}
