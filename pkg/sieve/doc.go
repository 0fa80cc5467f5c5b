// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package sieve captures runtime errors, drops the ones that match exclusion
// rules, classifies the rest and keeps them as tiered records in a session
// trace. Reports summarize the records added since the previous report and
// are produced on demand or by triggers: a time interval, a number of
// pending errors, or a panic-flagged error.
//
// Errors arrive through a source.Target. The default target is an
// application scope source.Bus:
//
//	engine := sieve.New()
//	err := engine.Init(sieve.Config{
//		Sign:               "checkout",
//		ResponseResolution: sieve.TierMedium,
//		PanicMessages:      sieve.Literals("out of memory"),
//		AutoReportTriggers: []sieve.Trigger{
//			sieve.IntervalTrigger(time.Minute),
//			sieve.QuantityTrigger(10),
//		},
//		OnAutoReport: func(r sieve.Report) { ship(r) },
//	})
//
//	bus := engine.Target().(*source.Bus)
//	bus.Guard(func() { handleRequest() })
//
// Engine.EmitError records errors raised by hand; they are tagged KindByEmit.
package sieve
