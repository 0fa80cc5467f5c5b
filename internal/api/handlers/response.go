// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Response is the envelope of every API reply. Exactly one of Data and
// Error is set.
type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
	Meta  MetaInfo    `json:"meta"`
}

// ErrorInfo describes a failed request.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo carries the reply time and, for list replies, the item count.
type MetaInfo struct {
	Timestamp time.Time `json:"timestamp"`
	Count     *int      `json:"count,omitempty"`
}

// Error codes.
const (
	ErrBadRequest    = "BAD_REQUEST"
	ErrInternalError = "INTERNAL_ERROR"
)

// WriteJSON writes data in the envelope.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Response{Data: data, Meta: meta()})
}

// WriteList writes a slice in the envelope along with its length.
func WriteList[T any](w http.ResponseWriter, status int, items []T) {
	if items == nil {
		items = []T{}
	}
	m := meta()
	n := len(items)
	m.Count = &n
	write(w, status, Response{Data: items, Meta: m})
}

// WriteError writes an error reply.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	write(w, status, Response{
		Error: &ErrorInfo{Code: code, Message: message},
		Meta:  meta(),
	})
}

func meta() MetaInfo {
	return MetaInfo{Timestamp: time.Now().UTC()}
}

func write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Debug("api: write response", "error", err)
	}
}
