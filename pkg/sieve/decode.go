// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package sieve

import (
	"encoding/json"
	"fmt"
)

// DecodeRecord decodes a JSON-encoded record, using its resolution field to
// pick the variant.
func DecodeRecord(data []byte) (Record, error) {
	var probe struct {
		Resolution Tier `json:"resolution"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	switch probe.Resolution {
	case TierLow:
		var r LowRecord
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode low record: %w", err)
		}
		return r, nil
	case TierMedium:
		var r MediumRecord
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode medium record: %w", err)
		}
		return r, nil
	case TierHigh:
		var r HighRecord
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode high record: %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("decode record: unknown resolution %q", probe.Resolution)
	}
}

// DecodeRecords decodes a JSON array of records.
func DecodeRecords(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for i, r := range raw {
		rec, err := DecodeRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// UnmarshalJSON decodes a report, restoring each record's variant.
func (r *Report) UnmarshalJSON(data []byte) error {
	type plain Report
	var aux struct {
		plain
		NewErrors json.RawMessage `json:"newErrors"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("decode report: %w", err)
	}

	*r = Report(aux.plain)
	r.NewErrors = nil
	if len(aux.NewErrors) == 0 || string(aux.NewErrors) == "null" {
		return nil
	}

	records, err := DecodeRecords(aux.NewErrors)
	if err != nil {
		return err
	}
	r.NewErrors = records
	return nil
}
