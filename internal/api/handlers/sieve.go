// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package handlers serves the local engine inspection API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wingedpig/sieve/pkg/sieve"
)

// Engine is the part of *sieve.Engine the handlers use.
type Engine interface {
	Sign() string
	Resolution() sieve.Tier
	PendingErrors() int
	Trace() []sieve.Record
	FilterTrace(kind sieve.Kind) []sieve.Record
	Report() sieve.Report
	EmitError(cfg sieve.EmitConfig)
}

// SieveHandler handles engine endpoints.
type SieveHandler struct {
	engine Engine
}

// NewSieveHandler creates a new engine handler.
func NewSieveHandler(engine Engine) *SieveHandler {
	return &SieveHandler{engine: engine}
}

// Status describes the engine state.
type Status struct {
	Sign          string     `json:"sign"`
	Resolution    sieve.Tier `json:"resolution"`
	TraceLength   int        `json:"traceLength"`
	PendingErrors int        `json:"pendingErrors"`
}

// Status returns the session label, tier and counters.
func (h *SieveHandler) Status(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, Status{
		Sign:          h.engine.Sign(),
		Resolution:    h.engine.Resolution(),
		TraceLength:   len(h.engine.Trace()),
		PendingErrors: h.engine.PendingErrors(),
	})
}

// Trace returns the recorded errors, optionally filtered by ?type=<kind>.
func (h *SieveHandler) Trace(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("type")
	if name == "" {
		WriteList(w, http.StatusOK, h.engine.Trace())
		return
	}

	kind, ok := sieve.ParseKind(name)
	if !ok {
		WriteError(w, http.StatusBadRequest, ErrBadRequest, "unknown error type: "+name)
		return
	}
	WriteList(w, http.StatusOK, h.engine.FilterTrace(kind))
}

// Report computes a report of the errors recorded since the previous one.
func (h *SieveHandler) Report(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.engine.Report())
}

// EmitRequest is the body of an emit request.
type EmitRequest struct {
	Message    string         `json:"message"`
	FileName   string         `json:"fileName"`
	Line       int            `json:"line"`
	Column     int            `json:"column"`
	CustomData map[string]any `json:"customData"`
}

// Emit records a manually emitted error.
func (h *SieveHandler) Emit(w http.ResponseWriter, r *http.Request) {
	var req EmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrBadRequest, "invalid JSON: "+err.Error())
		return
	}

	h.engine.EmitError(sieve.EmitConfig{
		Message:    req.Message,
		FileName:   req.FileName,
		Line:       req.Line,
		Column:     req.Column,
		CustomData: req.CustomData,
	})
	WriteJSON(w, http.StatusAccepted, map[string]int{"pendingErrors": h.engine.PendingErrors()})
}
