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
)

func TestDecodeRecord_Variants(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	header := Header{
		Sign:             "s",
		HasPanic:         true,
		ErrorGeneralData: GeneralData{Message: "boom", Type: KindType, FileName: "app.js", Line: 3, Column: 9},
		URL:              "https://shop.example.com",
	}

	low := header
	low.Tier = TierLow
	medium := header
	medium.Tier = TierMedium
	high := header
	high.Tier = TierHigh
	name := "button"

	records := []Record{
		LowRecord{Header: low, Timestamp: at},
		MediumRecord{
			Header:          medium,
			TimeData:        TimeData{Timestamp: at, TimeDelta: 40 * time.Millisecond},
			ErrorTargetData: TargetData{TargetName: &name, TargetHTMLClassNames: []string{"primary"}},
		},
		HighRecord{
			Header:       high,
			TimeData:     TimeData{Timestamp: at, TimeDelta: 5 * time.Millisecond},
			PlatformData: PlatformData{Software: platform.Software{Browser: platform.BrowserFirefox, Lang: "de"}, Hardware: platform.Hardware{RAM: 8}},
			ViewportData: platform.NewViewport(800, 1200),
		},
	}

	for _, want := range records {
		t.Run(string(want.Resolution()), func(t *testing.T) {
			data, err := json.Marshal(want)
			require.NoError(t, err)

			got, err := DecodeRecord(data)
			require.NoError(t, err)
			assert.IsType(t, want, got)
			assert.Equal(t, want.General(), got.General())
			assert.True(t, got.Panic())
			assert.True(t, got.Time().Equal(at))

			wantDelta, wantOK := want.Delta()
			gotDelta, gotOK := got.Delta()
			assert.Equal(t, wantOK, gotOK)
			assert.Equal(t, wantDelta, gotDelta)
		})
	}
}

func TestDecodeRecord_HighKeepsPlatform(t *testing.T) {
	want := HighRecord{
		Header:       Header{Tier: TierHigh},
		PlatformData: PlatformData{Software: platform.Software{Browser: platform.BrowserSafari, IsMobile: true}},
		ViewportData: platform.NewViewport(390, 844),
	}
	data, err := json.Marshal(want)
	require.NoError(t, err)

	got, err := DecodeRecord(data)
	require.NoError(t, err)
	high := got.(HighRecord)
	assert.Equal(t, want.PlatformData, high.PlatformData)
	assert.Equal(t, want.ViewportData, high.ViewportData)
}

func TestDecodeRecord_Errors(t *testing.T) {
	_, err := DecodeRecord([]byte(`{"resolution":"Ultra"}`))
	assert.ErrorContains(t, err, `unknown resolution "Ultra"`)

	_, err = DecodeRecord([]byte(`{`))
	assert.Error(t, err)

	_, err = DecodeRecords([]byte(`[{"resolution":"Low"},{"resolution":""}]`))
	assert.ErrorContains(t, err, "record 1")
}

func TestReport_UnmarshalJSON(t *testing.T) {
	want := Report{
		ErrorsTotalAmount: 3,
		Resolution:        TierMedium,
		NewErrors: []Record{
			MediumRecord{Header: Header{Tier: TierMedium, ErrorGeneralData: GeneralData{Message: "a"}}},
			MediumRecord{Header: Header{Tier: TierMedium, ErrorGeneralData: GeneralData{Message: "b"}}},
		},
		Sign:             "s",
		HasPanic:         true,
		Host:             "https://shop.example.com",
		AverageDeltaTime: 12 * time.Millisecond,
	}
	data, err := json.Marshal(want)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want.ErrorsTotalAmount, got.ErrorsTotalAmount)
	assert.Equal(t, want.Sign, got.Sign)
	assert.Equal(t, want.Host, got.Host)
	assert.Equal(t, want.AverageDeltaTime, got.AverageDeltaTime)
	assert.True(t, got.HasPanic)
	require.Len(t, got.NewErrors, 2)
	assert.Equal(t, "b", got.NewErrors[1].General().Message)

	var empty Report
	require.NoError(t, json.Unmarshal([]byte(`{"errorsTotalAmount":0,"newErrors":null}`), &empty))
	assert.Nil(t, empty.NewErrors)
}
