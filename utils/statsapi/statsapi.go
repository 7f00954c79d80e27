// Package statsapi is the JSON-over-HTTP client for the remote statistica
// analysis service. All numerical computation happens server-side; this
// client only posts configured requests and decodes the returned results.
package statsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	analysisPathPrefix = "/api/analysis/"

	// defaultTimeout bounds a single analysis request. Long-running Monte
	// Carlo jobs are still served synchronously by the API.
	defaultTimeout = 60 * time.Second
)

// Client posts analysis requests to the statistica API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ConfigError{Reason: "base URL must not be empty"}
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Run posts body to the analysis endpoint named by slug (e.g. "naive-bayes")
// and decodes the result. Non-2xx responses are returned as *APIError.
func (c *Client) Run(ctx context.Context, slug string, body any) (*Result, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return nil, ConfigError{Reason: "analysis slug must not be empty"}
	}

	reqBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + analysisPathPrefix + slug
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	c.log.Debug("analysis request",
		zap.String("slug", slug),
		zap.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("analysis request failed",
			zap.String("slug", slug),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("analysis response",
		zap.String("slug", slug),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp.StatusCode, respBody)
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &result, nil
}

// errorPayload mirrors the API's error body; either field may be present.
type errorPayload struct {
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

func decodeAPIError(status int, body []byte) *APIError {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		detail := payload.Detail
		if detail == "" {
			detail = payload.Error
		}
		if detail != "" {
			return &APIError{Status: status, Detail: detail}
		}
	}
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &APIError{Status: status, Detail: detail}
}
