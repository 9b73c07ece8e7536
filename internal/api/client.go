// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the insights backend.
//
// The backend exposes a small JSON API: a question endpoint that runs
// the analysis, background CRUD for the company context text, a history
// reset, and a diagnostics endpoint. All methods take a context and
// return typed errors so callers can distinguish transport failures
// from server-reported ones.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/insightsbot/insights-tui/internal/logging"
)

const (
	// DefaultBaseURL is the base URL for a locally running backend.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout is the default timeout for API requests. Ask
	// requests can take a while since the backend runs an LLM pass.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// MaxBackgroundLength is the hard cap on background text accepted
	// by the server. Enforced client-side before any request is made.
	MaxBackgroundLength = 2000
)

// Error variables for common client errors.
var (
	// ErrEmptyQuestion indicates an ask was attempted with no question text.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrBackgroundEmpty indicates a save was attempted with no background text.
	ErrBackgroundEmpty = errors.New("background text is empty")

	// ErrBackgroundTooLong indicates the background text exceeds the server cap.
	ErrBackgroundTooLong = errors.New("background text exceeds maximum length")

	// ErrUnexpectedFormat indicates a 200 response carried neither
	// insights nor an error field.
	ErrUnexpectedFormat = errors.New("unexpected response format from server")
)

// APIError represents an error reported by the backend.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// Client communicates with the insights backend.
type Client struct {
	baseURL    string
	companyID  string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a client for the given base URL and company.
func NewClient(baseURL, companyID string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		companyID:  companyID,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient sets a custom HTTP client, keeping the configured timeout.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	hc.Timeout = c.timeout
	c.httpClient = hc
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CompanyID returns the configured company ID.
func (c *Client) CompanyID() string {
	return c.companyID
}

// Ask submits a question and returns the generated insights. The
// background text rides along only when it has been locally edited.
func (c *Client) Ask(ctx context.Context, question, background string) (*AskResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	var out AskResponse
	err := c.postJSON(ctx, "/ask", AskRequest{
		Prompt:     question,
		CompanyID:  c.companyID,
		Background: background,
	}, &out)
	if err != nil {
		return nil, err
	}

	// The server reports some failures inside a 200 body.
	if out.Insights == "" {
		if out.Error != "" {
			return nil, &APIError{Status: http.StatusOK, Message: out.Error}
		}
		return nil, ErrUnexpectedFormat
	}
	return &out, nil
}

// GetBackground fetches the background info for the configured company.
func (c *Client) GetBackground(ctx context.Context) (*BackgroundInfo, error) {
	var out BackgroundInfo
	path := "/get_background?company_id=" + url.QueryEscape(c.companyID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBackground saves edited background text. Length limits are
// checked locally so invalid saves never reach the network.
func (c *Client) UpdateBackground(ctx context.Context, background string) (*UpdateBackgroundResponse, error) {
	if strings.TrimSpace(background) == "" {
		return nil, ErrBackgroundEmpty
	}
	if len([]rune(background)) > MaxBackgroundLength {
		return nil, fmt.Errorf("%w: %d > %d characters", ErrBackgroundTooLong, len([]rune(background)), MaxBackgroundLength)
	}

	var out UpdateBackgroundResponse
	err := c.postJSON(ctx, "/update_background", UpdateBackgroundRequest{
		CompanyID:  c.companyID,
		Background: background,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetBackground restores the original background text on the server.
func (c *Client) ResetBackground(ctx context.Context) (*UpdateBackgroundResponse, error) {
	var out UpdateBackgroundResponse
	err := c.postJSON(ctx, "/reset_background", companyRequest{CompanyID: c.companyID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearHistory wipes the server-side conversation history.
func (c *Client) ClearHistory(ctx context.Context) (*ClearHistoryResponse, error) {
	var out ClearHistoryResponse
	if err := c.postJSON(ctx, "/clear_history", companyRequest{CompanyID: c.companyID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status fetches the diagnostics payload from the backend.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	path := "/test?company_id=" + url.QueryEscape(c.companyID)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// postJSON sends a POST with a JSON body and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// getJSON sends a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

// do executes the request and handles error responses uniformly.
func (c *Client) do(req *http.Request, out any) error {
	logging.Debugf("API request: %s %s", req.Method, req.URL.Path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Errorf("API request failed: %s %s: %v", req.Method, req.URL.Path, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if entry := logging.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"path":     req.URL.Path,
		"duration": time.Since(start).String(),
	}); entry != nil {
		entry.Debug("API response")
	}

	if resp.StatusCode != http.StatusOK {
		return parseError(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// parseError converts a non-200 response into an *APIError. The server
// reports errors in either an "error" or a "message" field; when the
// body is not JSON the raw text is used.
func parseError(status int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Error != "" {
			return &APIError{Status: status, Message: errResp.Error}
		}
		if errResp.Message != "" {
			return &APIError{Status: status, Message: errResp.Message}
		}
	}
	return &APIError{Status: status, Message: strings.TrimSpace(string(body))}
}
