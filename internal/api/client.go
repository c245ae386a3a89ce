// Package api is the HTTP client for the leaderboard backend.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is where the backend mounts its routes when run locally.
	DefaultBaseURL = "http://localhost:3000/api/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// RequestIDHeader carries a per-request id for correlating client and server logs.
	RequestIDHeader = "X-Request-ID"

	// maxResponseBody is the maximum response body size to read (4 MB).
	maxResponseBody = 4 << 20
)

// Client talks to the leaderboard backend.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
	logger      *zap.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
	// Timeout is used when HTTPClient is nil.
	Timeout time.Duration
	// RatePerSecond and Burst configure client-side rate limiting (0 = unlimited).
	RatePerSecond float64
	Burst         int
	// Logger receives request diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, opts *ClientOptions) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, WithDetails(ErrInvalidBaseURL, map[string]string{"url": baseURL})
	}

	if opts == nil {
		opts = &ClientOptions{}
	}
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  opts.HTTPClient,
		rateLimiter: NewRateLimiter(opts.RatePerSecond, opts.Burst),
		logger:      opts.Logger,
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Leaderboard fetches one server page of ranked traders. The response
// order is the ranking.
func (c *Client) Leaderboard(ctx context.Context, page, pageSize int) ([]Trader, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	body, err := c.do(ctx, http.MethodGet, "leaderboard", "/leaderboard", q)
	if err != nil {
		return nil, err
	}
	var traders []Trader
	if err := json.Unmarshal(body, &traders); err != nil {
		return nil, Wrap(ErrDecode, err)
	}
	return traders, nil
}

// Sync asks the backend to refresh its dataset. Any 2xx is success; the
// response body is ignored.
func (c *Client) Sync(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "sync", "/sync", nil)
	return err
}

// Trader fetches the stats of a single address.
func (c *Client) Trader(ctx context.Context, address string) (*Trader, error) {
	body, err := c.do(ctx, http.MethodGet, "trader", "/trader/"+url.PathEscape(address), nil)
	if err != nil {
		return nil, err
	}
	var t Trader
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, Wrap(ErrDecode, err)
	}
	return &t, nil
}

// Health queries the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	body, err := c.do(ctx, http.MethodGet, "health", "/health", nil)
	if err != nil {
		return nil, err
	}
	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, Wrap(ErrDecode, err)
	}
	return &h, nil
}

func (c *Client) do(ctx context.Context, method, endpoint, path string, query url.Values) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx, endpoint); err != nil {
		return nil, Wrap(ErrRequestFailed, fmt.Errorf("rate limiter: %w", err))
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, Wrap(ErrRequestFailed, fmt.Errorf("creating request: %w", err))
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, Wrap(ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		log.Warn("reading response failed", zap.Error(err))
		return nil, Wrap(ErrRequestFailed, fmt.Errorf("reading response: %w", err))
	}

	log.Debug("request done",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)),
	)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, WithDetails(ErrRateLimited, map[string]string{
			"status": strconv.Itoa(resp.StatusCode),
		})
	case resp.StatusCode == http.StatusNotFound && endpoint == "trader":
		return nil, ErrNotFound
	}
	log.Warn("unexpected status", zap.Int("status", resp.StatusCode))
	return nil, WithDetails(ErrUnexpectedStatus, map[string]string{
		"status": strconv.Itoa(resp.StatusCode),
		"body":   truncateBody(string(body), 256),
	})
}

func truncateBody(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
