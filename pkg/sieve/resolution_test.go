// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wingedpig/sieve/pkg/platform"
	"github.com/wingedpig/sieve/pkg/source"
)

func sampleInner() InnerReport {
	return InnerReport{
		Sign:     "s",
		HasPanic: true,
		General:  GeneralData{Message: "m", Type: KindRange, FileName: "f.go", Line: 1, Column: 2},
		URL:      "https://example.com/a",
		Platform: PlatformData{
			Software: platform.Software{Browser: platform.BrowserFirefox, OS: platform.OSWindows},
			Hardware: platform.Hardware{RAM: 4},
		},
		Time:     TimeData{Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), TimeDelta: 9 * time.Millisecond},
		Viewport: platform.NewViewport(300, 600),
		Target:   TargetDataOf(&source.Element{Name: "button", Classes: []string{"buy"}, ID: "checkout"}),
	}
}

func TestBuild_Low(t *testing.T) {
	rec := Build(TierLow, sampleInner())

	low, ok := rec.(LowRecord)
	require.True(t, ok)
	assert.Equal(t, TierLow, low.Resolution())
	assert.True(t, low.Panic())
	assert.Equal(t, sampleInner().Time.Timestamp, low.Time())
	_, hasDelta := low.Delta()
	assert.False(t, hasDelta)
}

func TestBuild_Medium(t *testing.T) {
	rec := Build(TierMedium, sampleInner())

	medium, ok := rec.(MediumRecord)
	require.True(t, ok)
	assert.Equal(t, TierMedium, medium.Resolution())
	d, hasDelta := medium.Delta()
	assert.True(t, hasDelta)
	assert.Equal(t, 9*time.Millisecond, d)
	require.NotNil(t, medium.ErrorTargetData.TargetName)
	assert.Equal(t, "button", *medium.ErrorTargetData.TargetName)
}

func TestBuild_High(t *testing.T) {
	rec := Build(TierHigh, sampleInner())

	high, ok := rec.(HighRecord)
	require.True(t, ok)
	assert.Equal(t, platform.BrowserFirefox, high.PlatformData.Software.Browser)
	assert.Equal(t, platform.OrientationPortrait, high.ViewportData.Orientation)
	assert.Equal(t, []string{"buy"}, high.ErrorTargetData.TargetHTMLClassNames)
}

func TestBuild_UnknownTierIsLow(t *testing.T) {
	_, ok := Build(TierUnknown, sampleInner()).(LowRecord)
	assert.True(t, ok)
	_, ok = Build(Tier("Extreme"), sampleInner()).(LowRecord)
	assert.True(t, ok)
}

func TestBuild_CopiesInputs(t *testing.T) {
	in := sampleInner()
	in.CustomData = map[string]any{"k": "v"}

	rec := Build(TierHigh, in).(HighRecord)
	in.CustomData["k"] = "changed"
	in.Target.TargetHTMLClassNames[0] = "changed"

	assert.Equal(t, "v", rec.CustomData["k"])
	assert.Equal(t, "buy", rec.ErrorTargetData.TargetHTMLClassNames[0])
}

func TestRecord_JSONShape(t *testing.T) {
	data, err := json.Marshal(Build(TierLow, sampleInner()))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Low", got["resolution"])
	assert.Contains(t, got, "customData")
	assert.Nil(t, got["customData"])
	assert.NotContains(t, got, "timeData")

	data, err = json.Marshal(Build(TierHigh, sampleInner()))
	require.NoError(t, err)
	got = nil
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "High", got["resolution"])
	assert.Contains(t, got, "errorGeneralData")
}

func TestTargetDataOf(t *testing.T) {
	empty := TargetDataOf(nil)
	assert.Nil(t, empty.TargetName)
	assert.Nil(t, empty.TargetHTMLID)
	assert.NotNil(t, empty.TargetHTMLClassNames)
	assert.Empty(t, empty.TargetHTMLClassNames)

	window := TargetDataOf(&source.Window)
	require.NotNil(t, window.TargetName)
	assert.Equal(t, "window", *window.TargetName)
	assert.Nil(t, window.TargetHTMLID)
}
