// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package api serves engine inspection endpoints and Prometheus metrics.
package api

import (
	"log/slog"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wingedpig/sieve/internal/api/handlers"
	"github.com/wingedpig/sieve/internal/api/middleware"
)

// Dependencies holds the router's collaborators.
type Dependencies struct {
	Engine      handlers.Engine
	Gatherer    prometheus.Gatherer // nil disables the metrics endpoint
	MetricsPath string              // defaults to /metrics
	Logger      *slog.Logger
}

// NewRouter creates a new API router.
func NewRouter(deps Dependencies) *mux.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))

	if deps.Gatherer != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	h := handlers.NewSieveHandler(deps.Engine)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/status", h.Status).Methods("GET")
	api.HandleFunc("/trace", h.Trace).Methods("GET")
	api.HandleFunc("/reports", h.Report).Methods("POST")
	api.HandleFunc("/errors", h.Emit).Methods("POST")

	return r
}
