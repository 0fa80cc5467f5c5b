// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingedpig/sieve/internal/config"
	"github.com/wingedpig/sieve/pkg/platform"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sieve.hjson")
	content := `{
		sign: checkout
		exclude_types: ["syntax", "Uri"]
		exclude_messages: ["ResizeObserver"]
		panic_messages: ["fatal"]
		exclude_browsers: ["internet explorer"]
		response_resolution: high
		auto_report_triggers: [
			{ type: "TimeInterval", interval: "2s" }
			{ type: "ErrorsQuantity", value: 25 }
			{ type: "Panic" }
		]
		platform: {
			user_agent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
			lang: fr-FR
			url: "https://m.example.com/home"
			width: 390
			height: 844
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "checkout", cfg.Sign)
	assert.Equal(t, []Kind{KindSyntax, KindURI}, cfg.ExcludeTypes)
	require.Len(t, cfg.ExcludeMessages, 1)
	assert.True(t, cfg.ExcludeMessages[0].Match("ResizeObserver loop"))
	require.Len(t, cfg.PanicMessages, 1)
	assert.Equal(t, []platform.Browser{platform.BrowserInternetExplorer}, cfg.ExcludeBrowsers)
	assert.Equal(t, TierHigh, cfg.ResponseResolution)
	assert.Equal(t, []Trigger{
		IntervalTrigger(2 * time.Second),
		QuantityTrigger(25),
		PanicTrigger(),
	}, cfg.AutoReportTriggers)

	require.NotNil(t, cfg.Platform)
	soft := cfg.Platform.Software()
	assert.Equal(t, platform.BrowserSafari, soft.Browser)
	assert.True(t, soft.IsMobile)
	assert.Equal(t, "fr-FR", soft.Lang)
	assert.Equal(t, "https://m.example.com/home", cfg.Platform.URL())
	assert.Equal(t, platform.OrientationPortrait, cfg.Platform.Viewport().Orientation)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(context.Background(), filepath.Join(t.TempDir(), "nope.hjson"))
	assert.ErrorContains(t, err, "read config")
}

func TestConfigFromFile_CollectsErrors(t *testing.T) {
	fc := &config.Config{
		ExcludeTypes:       []string{"Reference", "Fatal"},
		ExcludeBrowsers:    []string{"Netscape"},
		ResponseResolution: "Ultra",
		AutoReportTriggers: []config.TriggerConfig{
			{Type: "Hourly"},
			{Type: "TimeInterval", Interval: "later"},
		},
		Logging: config.LoggingConfig{Level: "loud"},
	}

	_, err := ConfigFromFile(fc)
	require.Error(t, err)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{
		"auto_report_triggers[1].interval",
		"logging.level",
		"exclude_types[1]",
		"exclude_browsers[0]",
		"response_resolution",
		"auto_report_triggers[0].type",
	}, fields)
}

func TestConfigFromFile_HostPlatform(t *testing.T) {
	cfg, err := ConfigFromFile(&config.Config{
		Platform: config.PlatformConfig{RAM: 32, URL: "https://internal.example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, platform.BrowserUnknown, cfg.Platform.Software().Browser)
	assert.Equal(t, 32.0, cfg.Platform.Hardware().RAM)
	assert.Equal(t, "https://internal.example.com", cfg.Platform.URL())
	assert.Nil(t, cfg.ExcludeTypes)
	assert.Nil(t, cfg.AutoReportTriggers)
	assert.Equal(t, Tier(""), cfg.ResponseResolution)
}

func TestConfigFromFile_ValueTriggers(t *testing.T) {
	cfg, err := ConfigFromFile(&config.Config{
		AutoReportTriggers: []config.TriggerConfig{
			{Type: "TimeInterval", Value: 1500},
			{Type: "errorsquantity", Value: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []Trigger{
		{Kind: TriggerTimeInterval, Value: 1500},
		{Kind: TriggerErrorsQuantity, Value: 4},
	}, cfg.AutoReportTriggers)
}
