package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/observability"

	"github.com/google/uuid"
)

// APIError carries the status and best available server-provided message
// for a failed backend call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Unwrap lets errors.Is(err, domain.ErrUnauthorized) match 401 responses
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	return nil
}

// Client is the typed HTTP client for the marketplace backend.
// All persistent state lives behind it; the gateway holds none.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     domain.TokenStore
}

// New creates a backend client. tokens may be nil for unauthenticated use.
func New(baseURL string, timeout time.Duration, tokens domain.TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

// do executes one backend call. GET requests are retried with linear
// backoff; writes are never retried so a payment or order is not issued
// twice.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if pair, ok := c.tokens.Pair(); ok && pair.Access != "" {
			req.Header.Set("Authorization", "Bearer "+pair.Access)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = 3
	}

	start := time.Now()
	var resp *http.Response
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, lastErr = c.httpClient.Do(req)
		if lastErr == nil && resp.StatusCode < http.StatusInternalServerError {
			break
		}
		if resp != nil {
			resp.Body.Close()
			resp = nil
		}
		if attempt < attempts {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
	}

	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	observability.UpstreamRequestDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	observability.UpstreamRequestsTotal.WithLabelValues(op, status).Inc()

	if lastErr != nil {
		return fmt.Errorf("%s: request failed: %w", op, lastErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

// decodeError extracts the best available message from an error payload.
// The backend is inconsistent about the field name.
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		switch {
		case payload.Error != "":
			apiErr.Message = payload.Error
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Detail != "":
			apiErr.Message = payload.Detail
		}
	}
	return apiErr
}

func queryPath(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
