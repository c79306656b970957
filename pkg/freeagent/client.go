// Package freeagent provides a FreeAgent accounting API client.
// Resources are handled as generic JSON documents; callers pick the
// fields they care about.
package freeagent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerline/freeagent-cli/pkg/auth"
	"github.com/ledgerline/freeagent-cli/pkg/config"
)

// APIError is returned when the FreeAgent API responds with an error status.
type APIError struct {
	StatusCode int
	Path       string
	Body       string

	retryAfterHeader string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d on %s: %s", e.StatusCode, e.Path, e.Body)
}

// TokenSource supplies valid access tokens for API requests.
// *auth.Manager satisfies it.
type TokenSource interface {
	Valid(ctx context.Context) (*auth.Token, error)
	ForceRefresh(ctx context.Context) (*auth.Token, error)
}

// Recorder receives a record of every completed API call.
type Recorder interface {
	RecordCall(method, path string, status int)
}

// Client is the HTTP wrapper around the FreeAgent REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	recorder   Recorder
	sleep      func(time.Duration) // swapped out in tests
}

// NewClient creates a new API client.
func NewClient(cfg *config.Config, tokens TokenSource) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		tokens:     tokens,
		sleep:      time.Sleep,
	}
}

// SetRecorder attaches a call recorder. A nil recorder disables recording.
func (c *Client) SetRecorder(r Recorder) {
	c.recorder = r
}

// Get performs a GET request and decodes the JSON payload.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	return c.Do(ctx, http.MethodGet, path, params, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, params url.Values, body any) (map[string]any, error) {
	return c.Do(ctx, http.MethodPost, path, params, body)
}

// Put performs a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, params url.Values, body any) (map[string]any, error) {
	return c.Do(ctx, http.MethodPut, path, params, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// Do performs an API request with the full token/backoff behaviour:
// a 401 triggers one token refresh and retry, a 429 honours Retry-After
// and retries once without a second refresh.
func (c *Client) Do(ctx context.Context, method, path string, params url.Values, body any) (map[string]any, error) {
	var payload []byte
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = data
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, path, params, payload, contentType)
}

// doRaw drives the retry state machine over send.
func (c *Client) doRaw(ctx context.Context, method, path string, params url.Values, payload []byte, contentType string) (map[string]any, error) {
	token, err := c.tokens.Valid(ctx)
	if err != nil {
		return nil, err
	}

	allowRefresh := true
	allowRetry := true
	for {
		result, apiErr, err := c.send(ctx, method, path, params, payload, contentType, token.AccessToken)
		if err != nil {
			return nil, err
		}
		if apiErr == nil {
			return result, nil
		}

		switch {
		case apiErr.StatusCode == http.StatusUnauthorized && allowRefresh:
			slog.Debug("access token rejected, refreshing", "path", path)
			token, err = c.tokens.ForceRefresh(ctx)
			if err != nil {
				return nil, err
			}
			allowRefresh = false

		case apiErr.StatusCode == http.StatusTooManyRequests && allowRetry:
			wait := retryAfter(apiErr)
			slog.Debug("rate limited", "path", path, "retry_after", wait)
			c.sleep(wait)
			allowRefresh = false
			allowRetry = false

		default:
			return nil, apiErr
		}
	}
}

// send performs a single HTTP round trip. An error status comes back as
// *APIError so the caller can decide whether to retry.
func (c *Client) send(ctx context.Context, method, path string, params url.Values, payload []byte, contentType, accessToken string) (map[string]any, *APIError, error) {
	urlStr := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		urlStr += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	slog.Debug("HTTP request", "method", method, "url", urlStr, "body_bytes", len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.recorder != nil {
		c.recorder.RecordCall(method, path, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(respBody))}
		apiErr.retryAfterHeader = resp.Header.Get("Retry-After")
		return nil, apiErr, nil
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil, nil
	}

	var result map[string]any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JSON response from %s: %w", path, err)
	}
	return result, nil, nil
}

// retryAfter reads the Retry-After seconds captured on the error,
// defaulting to one second.
func retryAfter(e *APIError) time.Duration {
	if secs, err := strconv.Atoi(e.retryAfterHeader); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Second
}
