// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package client provides a Go client library for the Sieve inspection API.
//
// The sieve command serves the API when metrics.listen (or -listen) is set.
// It exposes the engine state, the error trace, manual reports and manual
// error emission.
//
// # Getting Started
//
// Create a client pointing to a running sieve:
//
//	c := client.New("http://127.0.0.1:9464")
//
//	// Engine state
//	status, err := c.Status(ctx)
//
//	// Every recorded TypeError
//	records, err := c.Trace(ctx, sieve.KindType)
//
//	// Report the errors recorded since the previous report
//	report, err := c.Report(ctx)
//
// Records come back as the same variants the engine builds, so a type switch
// on sieve.LowRecord, sieve.MediumRecord and sieve.HighRecord works as it
// does in-process.
//
// # Error Handling
//
// API errors are returned as *APIError values, which include an error code
// and message:
//
//	_, err := c.Trace(ctx, "Fatal")
//	var apiErr *client.APIError
//	if errors.As(err, &apiErr) {
//	    fmt.Printf("API error: %s - %s\n", apiErr.Code, apiErr.Message)
//	}
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wingedpig/sieve/pkg/sieve"
)

// Client is a Sieve inspection API client.
//
// The Client is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// New creates a new client with the given base URL and options.
//
// Any trailing slash is removed from baseURL. The default HTTP timeout is
// 30 seconds.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithHTTPClient sets a custom HTTP client for making requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout for all requests.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// BaseURL returns the base URL of the API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status describes the engine state.
type Status struct {
	Sign          string     `json:"sign"`
	Resolution    sieve.Tier `json:"resolution"`
	TraceLength   int        `json:"traceLength"`
	PendingErrors int        `json:"pendingErrors"`
}

// EmitRequest describes a manually emitted error.
type EmitRequest struct {
	Message    string         `json:"message,omitempty"`
	FileName   string         `json:"fileName,omitempty"`
	Line       int            `json:"line,omitempty"`
	Column     int            `json:"column,omitempty"`
	CustomData map[string]any `json:"customData,omitempty"`
}

// Status returns the engine's sign, resolution and counters.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	data, err := c.get(ctx, "/api/v1/status")
	if err != nil {
		return nil, err
	}

	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}
	return &status, nil
}

// Trace returns the recorded errors. A non-empty kind limits the result to
// errors of that kind.
func (c *Client) Trace(ctx context.Context, kind sieve.Kind) ([]sieve.Record, error) {
	path := "/api/v1/trace"
	if kind != "" {
		path += "?type=" + url.QueryEscape(string(kind))
	}

	data, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	records, err := sieve.DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}
	return records, nil
}

// Report asks the engine for a report of the errors recorded since the
// previous one.
func (c *Client) Report(ctx context.Context) (*sieve.Report, error) {
	data, err := c.post(ctx, "/api/v1/reports")
	if err != nil {
		return nil, err
	}

	var report sieve.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// Emit records an error through the engine and returns the number of errors
// pending the next report.
func (c *Client) Emit(ctx context.Context, req EmitRequest) (int, error) {
	data, err := c.postJSON(ctx, "/api/v1/errors", req)
	if err != nil {
		return 0, err
	}

	var resp struct {
		PendingErrors int `json:"pendingErrors"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}
	return resp.PendingErrors, nil
}

// apiResponse is the standard API response envelope.
type apiResponse struct {
	Data  json.RawMessage `json:"data"`
	Error *APIError       `json:"error"`
}

// APIError represents an error response from the API.
//
// Codes are "BAD_REQUEST" and "INTERNAL_ERROR".
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(data))
}

// do performs an HTTP request and parses the response.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.parseResponse(resp)
}

// parseResponse reads and parses an API response.
func (c *Client) parseResponse(resp *http.Response) (json.RawMessage, error) {
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if apiResp.Error != nil {
		return nil, apiResp.Error
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return apiResp.Data, nil
}
