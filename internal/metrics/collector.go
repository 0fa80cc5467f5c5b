// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package metrics exposes engine counters to Prometheus.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Report trigger labels.
const (
	TriggerManual         = "manual"
	TriggerTimeInterval   = "time_interval"
	TriggerErrorsQuantity = "errors_quantity"
	TriggerPanic          = "panic"
)

// Collector holds the engine's metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	captured *prometheus.CounterVec
	excluded *prometheus.CounterVec
	panics   prometheus.Counter
	reports  *prometheus.CounterVec
	records  prometheus.Gauge
}

// New creates a collector and registers it with reg.
// Collectors already registered by an earlier engine are reused.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		captured: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sieve_errors_captured_total",
				Help: "Total number of errors accepted into the trace",
			},
			[]string{"kind"},
		),
		excluded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sieve_errors_excluded_total",
				Help: "Total number of errors dropped by exclusion rules",
			},
			[]string{"reason"},
		),
		panics: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sieve_panics_total",
				Help: "Total number of errors flagged as panic",
			},
		),
		reports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sieve_reports_total",
				Help: "Total number of reports computed",
			},
			[]string{"trigger"},
		),
		records: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sieve_trace_records",
				Help: "Number of records in the session trace",
			},
		),
	}

	var err error
	if c.captured, err = register(reg, c.captured); err != nil {
		return nil, err
	}
	if c.excluded, err = register(reg, c.excluded); err != nil {
		return nil, err
	}
	if c.panics, err = register(reg, c.panics); err != nil {
		return nil, err
	}
	if c.reports, err = register(reg, c.reports); err != nil {
		return nil, err
	}
	if c.records, err = register(reg, c.records); err != nil {
		return nil, err
	}

	return c, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metrics: %w", err)
	}
	return c, nil
}

// Captured counts an accepted error of the given kind.
func (c *Collector) Captured(kind string, traceLen int) {
	if c == nil {
		return
	}
	c.captured.WithLabelValues(kind).Inc()
	c.records.Set(float64(traceLen))
}

// Excluded counts a dropped error.
func (c *Collector) Excluded(reason string) {
	if c == nil {
		return
	}
	c.excluded.WithLabelValues(reason).Inc()
}

// Panic counts an error flagged as panic.
func (c *Collector) Panic() {
	if c == nil {
		return
	}
	c.panics.Inc()
}

// Report counts a computed report.
func (c *Collector) Report(trigger string) {
	if c == nil {
		return
	}
	c.reports.WithLabelValues(trigger).Inc()
}
