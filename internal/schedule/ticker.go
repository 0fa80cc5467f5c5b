// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package schedule runs recurring callbacks on a fixed interval.
package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// every is a cron schedule that fires at a constant interval. Unlike
// cron.Every it keeps sub-second precision.
type every time.Duration

// Next returns the next activation time, later than t.
func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

// Ticker invokes a callback every interval until stopped.
type Ticker struct {
	mu       sync.Mutex
	cron     *cron.Cron
	interval time.Duration
	stopped  bool
}

// Every starts calling fn every d. A run that is still in progress when the
// next activation comes due causes that activation to be skipped, so calls
// never overlap.
func Every(d time.Duration, fn func()) (*Ticker, error) {
	if d <= 0 {
		return nil, fmt.Errorf("invalid interval %v", d)
	}
	if fn == nil {
		return nil, fmt.Errorf("nil callback")
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(every(d), cron.FuncJob(fn))
	c.Start()

	return &Ticker{cron: c, interval: d}, nil
}

// Interval returns the configured interval.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Stop cancels future activations. It does not wait for a running callback,
// so it is safe to call from inside one. Stop is idempotent.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.stopped = true
	t.cron.Stop()
}

// Stopped reports whether Stop has been called.
func (t *Ticker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
