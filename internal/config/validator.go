// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// Validator validates configuration against schema rules.
type Validator struct{}

// NewValidator creates a new config validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidationError contains multiple validation failures.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single field validation error.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(msgs, "; ")
}

// IsEmpty returns true if there are no validation errors.
func (e *ValidationError) IsEmpty() bool {
	return len(e.Errors) == 0
}

// Add adds a field error.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// Validate checks configuration validity. Names of kinds, tiers, browsers
// and trigger types are checked where they are converted.
func (v *Validator) Validate(cfg *Config) error {
	errs := &ValidationError{}

	v.validateTriggers(cfg, errs)
	v.validatePlatform(cfg, errs)
	v.validateSource(cfg, errs)
	v.validateLogging(cfg, errs)
	v.validateMetrics(cfg, errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func (v *Validator) validateTriggers(cfg *Config, errs *ValidationError) {
	for i, trig := range cfg.AutoReportTriggers {
		prefix := fmt.Sprintf("auto_report_triggers[%d]", i)

		if trig.Type == "" {
			errs.Add(prefix+".type", "is required")
		}
		if trig.Value < 0 {
			errs.Add(prefix+".value", "must not be negative")
		}
		if trig.Interval != "" {
			d, err := time.ParseDuration(trig.Interval)
			switch {
			case err != nil:
				errs.Add(prefix+".interval", fmt.Sprintf("invalid duration '%s'", trig.Interval))
			case d <= 0:
				errs.Add(prefix+".interval", "must be positive")
			case d < time.Millisecond:
				errs.Add(prefix+".interval", "must be at least 1ms")
			}
		}
	}
}

func (v *Validator) validatePlatform(cfg *Config, errs *ValidationError) {
	if cfg.Platform.RAM < 0 {
		errs.Add("platform.ram", "must not be negative")
	}
	if cfg.Platform.Width < 0 {
		errs.Add("platform.width", "must not be negative")
	}
	if cfg.Platform.Height < 0 {
		errs.Add("platform.height", "must not be negative")
	}
}

func (v *Validator) validateSource(cfg *Config, errs *ValidationError) {
	if cfg.Source.Settle != "" {
		if _, err := time.ParseDuration(cfg.Source.Settle); err != nil {
			errs.Add("source.settle", fmt.Sprintf("invalid duration '%s'", cfg.Source.Settle))
		}
	}
}

func (v *Validator) validateLogging(cfg *Config, errs *ValidationError) {
	switch strings.ToLower(cfg.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs.Add("logging.level", fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", cfg.Logging.Level))
	}

	switch cfg.Logging.Format {
	case "", "json", "text":
	default:
		errs.Add("logging.format", fmt.Sprintf("invalid format '%s', must be one of: json, text", cfg.Logging.Format))
	}
}

func (v *Validator) validateMetrics(cfg *Config, errs *ValidationError) {
	if cfg.Metrics.Listen != "" {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Listen); err != nil {
			errs.Add("metrics.listen", fmt.Sprintf("invalid address '%s'", cfg.Metrics.Listen))
		}
	}
	if cfg.Metrics.Path != "" && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs.Add("metrics.path", "must start with '/'")
	}
}
