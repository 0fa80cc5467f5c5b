// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wingedpig/sieve/internal/config"
	"github.com/wingedpig/sieve/pkg/platform"
)

// LoadConfig reads an HJSON, JSON or YAML configuration file and converts it
// into a Config. Callbacks, Target, Logger and Metrics are left unset.
func LoadConfig(ctx context.Context, path string) (Config, error) {
	fc, err := config.NewLoader().LoadWithDefaults(ctx, path)
	if err != nil {
		return Config{}, err
	}
	return ConfigFromFile(fc)
}

// ConfigFromFile validates a parsed configuration file and converts it into
// a Config. Every problem found is reported in a single
// *config.ValidationError.
func ConfigFromFile(fc *config.Config) (Config, error) {
	errs := &config.ValidationError{}
	if err := config.NewValidator().Validate(fc); err != nil {
		var verr *config.ValidationError
		if !errors.As(err, &verr) {
			return Config{}, err
		}
		errs.Errors = append(errs.Errors, verr.Errors...)
	}

	cfg := Config{
		Sign:                 fc.Sign,
		PreventErrorsDefault: fc.PreventErrorsDefault,
		ExcludeDesktop:       fc.ExcludeDesktop,
		ExcludeMobile:        fc.ExcludeMobile,
		Debug:                fc.Debug,
	}

	if len(fc.ExcludeMessages) > 0 {
		cfg.ExcludeMessages = Literals(fc.ExcludeMessages...)
	}
	if len(fc.PanicMessages) > 0 {
		cfg.PanicMessages = Literals(fc.PanicMessages...)
	}

	for i, name := range fc.ExcludeTypes {
		kind, ok := ParseKind(name)
		if !ok {
			errs.Add(fmt.Sprintf("exclude_types[%d]", i), fmt.Sprintf("unknown error type '%s'", name))
			continue
		}
		cfg.ExcludeTypes = append(cfg.ExcludeTypes, kind)
	}

	for i, name := range fc.ExcludeBrowsers {
		browser, ok := platform.ParseBrowser(name)
		if !ok {
			errs.Add(fmt.Sprintf("exclude_browsers[%d]", i), fmt.Sprintf("unknown browser '%s'", name))
			continue
		}
		cfg.ExcludeBrowsers = append(cfg.ExcludeBrowsers, browser)
	}

	if fc.ResponseResolution != "" {
		tier, ok := ParseTier(fc.ResponseResolution)
		if !ok {
			errs.Add("response_resolution", fmt.Sprintf("unknown resolution '%s', must be one of: Low, Medium, High", fc.ResponseResolution))
		}
		cfg.ResponseResolution = tier
	}

	for i, tc := range fc.AutoReportTriggers {
		if tc.Type == "" {
			continue // reported by the validator
		}
		kind, ok := ParseTriggerKind(tc.Type)
		if !ok || kind == TriggerUnknown {
			errs.Add(fmt.Sprintf("auto_report_triggers[%d].type", i), fmt.Sprintf("unknown trigger '%s', must be one of: TimeInterval, ErrorsQuantity, Panic", tc.Type))
			continue
		}
		if kind == TriggerTimeInterval && tc.Interval != "" {
			d, err := time.ParseDuration(tc.Interval)
			if err != nil {
				continue
			}
			cfg.AutoReportTriggers = append(cfg.AutoReportTriggers, IntervalTrigger(d))
			continue
		}
		cfg.AutoReportTriggers = append(cfg.AutoReportTriggers, NewTrigger(kind, tc.Value))
	}

	cfg.Platform = platformFromFile(fc.Platform)

	if !errs.IsEmpty() {
		return Config{}, errs
	}
	return cfg, nil
}

func platformFromFile(pc config.PlatformConfig) platform.Provider {
	var p *platform.Static
	if pc.UserAgent != "" {
		p = platform.FromUserAgent(pc.UserAgent, pc.Lang, pc.RAM)
	} else {
		p = platform.Host()
		if pc.Lang != "" {
			p.Soft.Lang = pc.Lang
		}
		p.Hard.RAM = pc.RAM
	}
	p.Location = pc.URL
	p.View = platform.NewViewport(pc.Width, pc.Height)
	return p
}
