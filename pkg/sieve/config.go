// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wingedpig/sieve/pkg/platform"
	"github.com/wingedpig/sieve/pkg/source"
)

// Config is accepted once by Engine.Init. Zero-valued fields leave the
// engine's defaults untouched.
type Config struct {
	// Sign labels every record and report. Defaults to "Anonymous_<unix ms>".
	Sign string
	// PreventErrorsDefault suppresses the source's default handling of
	// every captured error, e.g. re-raising a guarded panic.
	PreventErrorsDefault bool
	// Target is the event source to listen on. Defaults to an application
	// scope source.Bus.
	Target source.Target

	OnError      func(Record)
	OnPanic      func(Record)
	OnAutoReport func(Report)

	ExcludeTypes    []Kind
	ExcludeMessages []Rule
	PanicMessages   []Rule
	ExcludeDesktop  bool
	ExcludeMobile   bool
	ExcludeBrowsers []platform.Browser

	// Debug logs every dropped error.
	Debug bool
	// ResponseResolution is the record tier. Defaults to TierLow.
	ResponseResolution Tier
	// AutoReportTriggers are honored once per kind; the first wins.
	AutoReportTriggers []Trigger

	// Platform answers browser, OS, viewport and URL lookups. Defaults to
	// platform.Host().
	Platform platform.Provider
	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
	// Metrics, when set, receives the engine's Prometheus collectors.
	Metrics prometheus.Registerer
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// EmitConfig describes a manually emitted error.
type EmitConfig struct {
	Message    string
	FileName   string
	Line       int
	Column     int
	CustomData map[string]any
}

const defaultEmitMessage = "no error description"

// settings is the engine's resolved configuration.
type settings struct {
	sign            string
	preventDefault  bool
	target          source.Target
	excludeTypes    []Kind
	excludeMessages []Rule
	panicMessages   []Rule
	excludeDesktop  bool
	excludeMobile   bool
	excludeBrowsers []platform.Browser
	debug           bool
	tier            Tier
	triggers        triggerSet
	platform        platform.Provider
	logger          *slog.Logger
	now             func() time.Time
}

func defaultSettings(now time.Time) settings {
	return settings{
		sign:     "Anonymous_" + strconv.FormatInt(now.UnixMilli(), 10),
		target:   source.NewBus(),
		tier:     TierLow,
		triggers: newTriggerSet(nil),
		platform: platform.Host(),
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// apply merges the non-zero fields of cfg into s.
func (s *settings) apply(cfg Config) {
	if cfg.Sign != "" {
		s.sign = cfg.Sign
	}
	if cfg.PreventErrorsDefault {
		s.preventDefault = true
	}
	if cfg.Target != nil {
		s.target = cfg.Target
	}
	if cfg.ExcludeTypes != nil {
		s.excludeTypes = append([]Kind(nil), cfg.ExcludeTypes...)
	}
	if cfg.ExcludeMessages != nil {
		s.excludeMessages = append([]Rule(nil), cfg.ExcludeMessages...)
	}
	if cfg.PanicMessages != nil {
		s.panicMessages = append([]Rule(nil), cfg.PanicMessages...)
	}
	if cfg.ExcludeDesktop {
		s.excludeDesktop = true
	}
	if cfg.ExcludeMobile {
		s.excludeMobile = true
	}
	if cfg.ExcludeBrowsers != nil {
		s.excludeBrowsers = append([]platform.Browser(nil), cfg.ExcludeBrowsers...)
	}
	if cfg.Debug {
		s.debug = true
	}
	if cfg.ResponseResolution != "" {
		s.tier = cfg.ResponseResolution
	}
	if cfg.AutoReportTriggers != nil {
		s.triggers = newTriggerSet(cfg.AutoReportTriggers)
	}
	if cfg.Platform != nil {
		s.platform = cfg.Platform
	}
	if cfg.Logger != nil {
		s.logger = cfg.Logger
	}
	if cfg.Now != nil {
		s.now = cfg.Now
	}
}
