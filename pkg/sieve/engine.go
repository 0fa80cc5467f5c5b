// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/wingedpig/sieve/internal/events"
	"github.com/wingedpig/sieve/internal/metrics"
	"github.com/wingedpig/sieve/internal/schedule"
	"github.com/wingedpig/sieve/internal/trace"
	"github.com/wingedpig/sieve/pkg/platform"
	"github.com/wingedpig/sieve/pkg/source"
)

// SubscriptionID identifies a callback registration.
type SubscriptionID = events.SubscriptionID

// Exclusion reasons, as reported in debug logs and metrics.
const (
	reasonType    = "type"
	reasonMessage = "message"
	reasonBrowser = "browser"
	reasonMobile  = "mobile"
	reasonDesktop = "desktop"
)

// Engine captures errors from a target, filters and classifies them, keeps
// the session trace and emits reports.
//
// All methods are safe for concurrent use. Trace mutation and report cursor
// movement each happen under one lock; callbacks run outside it, in
// registration order, and may call back into the engine.
type Engine struct {
	mu          sync.Mutex
	cfg         settings
	initialized bool
	closed      bool

	software platform.Software
	hardware platform.Hardware

	trace       *trace.Store[Record]
	lastErrorAt time.Time

	unlisten func()
	ticker   *schedule.Ticker
	metrics  *metrics.Collector

	onError      *events.Signal[Record]
	onPanic      *events.Signal[Record]
	onAutoReport *events.Signal[Report]
}

var (
	defaultEngine *Engine
	defaultOnce   sync.Once
)

// Default returns the process-wide engine, creating it on first use.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// New creates an engine that is not yet listening. Call Init to start it.
func New() *Engine {
	return &Engine{
		cfg:          defaultSettings(time.Now()),
		trace:        trace.NewStore[Record](),
		onError:      events.NewSignal[Record](),
		onPanic:      events.NewSignal[Record](),
		onAutoReport: events.NewSignal[Report](),
	}
}

// Init applies cfg and starts listening on the configured target. Only the
// first call has any effect; later calls return nil without merging cfg.
func (e *Engine) Init(cfg Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}
	if e.closed {
		return errors.New("sieve: engine is closed")
	}

	resolved := e.cfg
	resolved.apply(cfg)

	var collector *metrics.Collector
	if cfg.Metrics != nil {
		c, err := metrics.New(cfg.Metrics)
		if err != nil {
			return fmt.Errorf("sieve: %w", err)
		}
		collector = c
	}

	unlisten, err := resolved.target.Listen(e.handle)
	if err != nil {
		return fmt.Errorf("sieve: listen: %w", err)
	}

	var ticker *schedule.Ticker
	if interval, ok := resolved.triggers.interval(); ok {
		if interval <= 0 {
			resolved.logger.Warn("sieve: ignoring time interval trigger without a positive interval")
		} else {
			ticker, err = schedule.Every(interval, func() {
				e.emitAutoReport(metrics.TriggerTimeInterval)
			})
			if err != nil {
				unlisten()
				return fmt.Errorf("sieve: start interval trigger: %w", err)
			}
		}
	}

	e.cfg = resolved
	e.metrics = collector
	e.software = resolved.platform.Software()
	e.hardware = resolved.platform.Hardware()
	e.unlisten = unlisten
	e.ticker = ticker
	e.initialized = true

	if cfg.OnError != nil {
		_, _ = e.onError.Add(cfg.OnError)
	}
	if cfg.OnPanic != nil {
		_, _ = e.onPanic.Add(cfg.OnPanic)
	}
	if cfg.OnAutoReport != nil {
		_, _ = e.onAutoReport.Add(cfg.OnAutoReport)
	}

	if resolved.debug {
		resolved.logger.Debug("sieve: initialized",
			"sign", resolved.sign,
			"resolution", resolved.tier,
			"triggers", len(resolved.triggers.list()),
			"browser", e.software.Browser,
			"mobile", e.software.IsMobile,
		)
	}

	return nil
}

// Initialized reports whether Init has run.
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// Close stops the interval trigger and stops listening on the target.
// Recorded data stays readable. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	if e.ticker != nil {
		e.ticker.Stop()
	}
	if e.unlisten != nil {
		e.unlisten()
		e.unlisten = nil
	}
	return nil
}

// Target returns the event source the engine listens on, or will listen on
// once initialized.
func (e *Engine) Target() source.Target {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.target
}

// Sign returns the session label.
func (e *Engine) Sign() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.sign
}

// Resolution returns the active tier.
func (e *Engine) Resolution() Tier {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.tier
}

// SetResponseResolution changes the tier of records built from now on.
// Records already in the trace keep their shape.
func (e *Engine) SetResponseResolution(tier Tier) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.tier = tier
}

// OnError registers fn to receive every accepted record.
func (e *Engine) OnError(fn func(Record)) (SubscriptionID, error) {
	return e.onError.Add(fn)
}

// OnPanic registers fn to receive every panic-flagged record, after the
// OnError callbacks for the same record.
func (e *Engine) OnPanic(fn func(Record)) (SubscriptionID, error) {
	return e.onPanic.Add(fn)
}

// OnAutoReport registers fn to receive reports emitted by triggers.
func (e *Engine) OnAutoReport(fn func(Report)) (SubscriptionID, error) {
	return e.onAutoReport.Add(fn)
}

// Unsubscribe removes a callback registered with OnError, OnPanic or
// OnAutoReport.
func (e *Engine) Unsubscribe(id SubscriptionID) error {
	if e.onError.Remove(id) == nil || e.onPanic.Remove(id) == nil || e.onAutoReport.Remove(id) == nil {
		return nil
	}
	return events.ErrSubscriptionNotFound
}

// EmitError dispatches a hand-made error through the engine's target, so it
// is filtered and recorded like any captured error. CustomData is attached
// only if it can be encoded as JSON.
func (e *Engine) EmitError(cfg EmitConfig) {
	message := cfg.Message
	if message == "" {
		message = defaultEmitMessage
	}

	var payload map[string]any
	if cfg.CustomData != nil && jsonLike(cfg.CustomData) {
		payload = cfg.CustomData
	}

	ev := source.NewEmittedEvent(message, cfg.FileName, cfg.Line, cfg.Column, payload)
	e.Target().Dispatch(ev)
}

// Trace returns a copy of every record accepted so far, oldest first.
func (e *Engine) Trace() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trace.Snapshot()
}

// FilterTrace returns the records of the given kind, oldest first.
func (e *Engine) FilterTrace(kind Kind) []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trace.Filter(func(r Record) bool {
		return r.General().Type == kind
	})
}

// Report summarizes the records added since the previous report and moves
// the report cursor past them.
func (e *Engine) Report() Report {
	e.mu.Lock()
	r := e.reportLocked()
	e.mu.Unlock()

	e.metrics.Report(metrics.TriggerManual)
	return r
}

// PendingErrors returns the number of records added since the last report.
func (e *Engine) PendingErrors() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trace.Pending()
}

func (e *Engine) reportLocked() Report {
	fresh := e.trace.Advance()
	return Report{
		ErrorsTotalAmount: e.trace.Len(),
		Resolution:        e.cfg.tier,
		NewErrors:         fresh,
		Sign:              e.cfg.sign,
		HasPanic:          anyPanic(fresh),
		Host:              originOf(e.cfg.platform.URL()),
		AverageDeltaTime:  averageDelta(e.cfg.tier, fresh),
	}
}

func (e *Engine) emitAutoReport(trigger string) {
	e.mu.Lock()
	r := e.reportLocked()
	e.mu.Unlock()

	e.metrics.Report(trigger)
	e.onAutoReport.Emit(r)
}

// handle runs the capture pipeline for one event.
func (e *Engine) handle(ev *source.ErrorEvent) {
	cfg := e.settings()

	if cfg.preventDefault {
		ev.PreventDefault()
	}

	kind := Classify(ev.Category)
	if ev.Emitted() {
		kind = KindByEmit
	}

	if reason, excluded := e.exclusion(cfg, kind, ev.Message); excluded {
		e.metrics.Excluded(reason)
		if cfg.debug {
			cfg.logger.Warn("sieve: excluded error",
				"reason", reason,
				"kind", kind,
				"message", ev.Message,
				"browser", e.software.Browser,
			)
		}
		return
	}

	hasPanic := matchAny(cfg.panicMessages, ev.Message)
	viewport := cfg.platform.Viewport()
	url := cfg.platform.URL()

	e.mu.Lock()
	now := e.cfg.now()
	var delta time.Duration
	if e.trace.Len() > 0 {
		delta = now.Sub(e.lastErrorAt)
	}

	rec := Build(e.cfg.tier, InnerReport{
		Sign:     e.cfg.sign,
		HasPanic: hasPanic,
		General: GeneralData{
			Message:  ev.Message,
			Type:     kind,
			FileName: ev.Filename,
			Line:     ev.Line,
			Column:   ev.Column,
		},
		CustomData: ev.Payload,
		URL:        url,
		Platform:   PlatformData{Software: e.software, Hardware: e.hardware},
		Time:       TimeData{Timestamp: now, TimeDelta: delta},
		Viewport:   viewport,
		Target:     TargetDataOf(ev.Target),
	})

	pending := e.trace.Append(rec)
	var quantityReport *Report
	if e.cfg.triggers.quantityReached(pending) {
		r := e.reportLocked()
		quantityReport = &r
	}
	e.lastErrorAt = now
	traceLen := e.trace.Len()
	e.mu.Unlock()

	e.metrics.Captured(string(kind), traceLen)
	e.onError.Emit(rec)

	if quantityReport != nil {
		e.metrics.Report(metrics.TriggerErrorsQuantity)
		e.onAutoReport.Emit(*quantityReport)
	}

	if !hasPanic {
		return
	}

	e.metrics.Panic()
	e.onPanic.Emit(rec)

	if cfg.triggers.onPanic() {
		e.emitAutoReport(metrics.TriggerPanic)
	}
}

// settings returns a copy of the resolved configuration.
func (e *Engine) settings() settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// exclusion returns the first exclusion rule the error falls under.
func (e *Engine) exclusion(cfg settings, kind Kind, message string) (string, bool) {
	switch {
	case slices.Contains(cfg.excludeTypes, kind):
		return reasonType, true
	case matchAny(cfg.excludeMessages, message):
		return reasonMessage, true
	case slices.Contains(cfg.excludeBrowsers, e.software.Browser):
		return reasonBrowser, true
	case cfg.excludeMobile && e.software.IsMobile:
		return reasonMobile, true
	case cfg.excludeDesktop && !e.software.IsMobile:
		return reasonDesktop, true
	}
	return "", false
}

// jsonLike reports whether v survives JSON encoding. Functions, channels
// and non-finite numbers do not.
func jsonLike(v any) bool {
	_, err := json.Marshal(v)
	return err == nil
}
