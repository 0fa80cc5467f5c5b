// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads sieve configuration files.
package config

// Config is the root configuration structure.
type Config struct {
	Version string `json:"version"`

	Sign                 string          `json:"sign"`
	PreventErrorsDefault bool            `json:"prevent_errors_default"`
	ExcludeTypes         []string        `json:"exclude_types"`
	ExcludeMessages      []string        `json:"exclude_messages"`
	PanicMessages        []string        `json:"panic_messages"`
	ExcludeDesktop       bool            `json:"exclude_desktop"`
	ExcludeMobile        bool            `json:"exclude_mobile"`
	ExcludeBrowsers      []string        `json:"exclude_browsers"`
	Debug                bool            `json:"debug"`
	ResponseResolution   string          `json:"response_resolution"` // "Low", "Medium", "High"
	AutoReportTriggers   []TriggerConfig `json:"auto_report_triggers"`

	Platform PlatformConfig `json:"platform"`
	Source   SourceConfig   `json:"source"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  MetricsConfig  `json:"metrics"`
}

// TriggerConfig configures one automatic report trigger.
type TriggerConfig struct {
	Type     string `json:"type"`     // "TimeInterval", "ErrorsQuantity", "Panic"
	Value    int64  `json:"value"`    // milliseconds for TimeInterval, count for ErrorsQuantity
	Interval string `json:"interval"` // TimeInterval as a duration, e.g. "30s"; overrides value
}

// PlatformConfig describes the platform errors are reported from.
type PlatformConfig struct {
	UserAgent string  `json:"user_agent"` // empty uses the host process
	Lang      string  `json:"lang"`
	RAM       float64 `json:"ram"`
	URL       string  `json:"url"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
}

// SourceConfig configures the NDJSON error feed.
type SourceConfig struct {
	Path      string `json:"path"`
	FromStart bool   `json:"from_start"`
	Settle    string `json:"settle"` // debounce for file change events
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // "json" or "text"
	Output string `json:"output"` // "stdout", "stderr", or file path
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Listen string `json:"listen"` // e.g. "127.0.0.1:9464"; empty disables
	Path   string `json:"path"`
}
