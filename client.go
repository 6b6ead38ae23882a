package mimiry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultBaseURL is the public Mimiry API endpoint.
	DefaultBaseURL = "https://ypoycmbljujlkmjuhfif.supabase.co/functions/v1/public-api"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the transport-level retry count for transient
	// connection failures. HTTP error responses are never retried.
	DefaultMaxRetries = 3
)

// Client talks to the Mimiry GPU Cloud API. A Client is safe for use from a
// single goroutine; concurrent callers should each own their own instance.
// Call Close when done to release the underlying connections.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger

	// clock/sleep seams, swapped out in tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

type options struct {
	baseURL    string
	timeout    time.Duration
	maxRetries int
	httpClient *http.Client
	logger     *slog.Logger
	registerer prometheus.Registerer
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL overrides the default API endpoint.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithMaxRetries sets the transport-level retry count for transient
// connection failures. Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(o *options) { o.maxRetries = n }
}

// WithHTTPClient supplies a custom *http.Client. The client is copied before
// its transport is wrapped, so the caller's instance is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithLogger enables debug logging of requests. The default logger discards
// everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics instruments the transport with request counters and a latency
// histogram registered against reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// New creates a Client. apiKey is required (Mimiry keys start with "mky_").
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, configError("api_key is required")
	}

	o := options{
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var hc http.Client
	if o.httpClient != nil {
		hc = *o.httpClient
	} else {
		hc = http.Client{
			Timeout: o.timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	rt := hc.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	if o.registerer != nil {
		rt = newMetricsTransport(rt, o.registerer)
	}
	if o.maxRetries > 0 {
		rt = newRetryTransport(rt, o.maxRetries)
	}
	hc.Transport = rt

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    strings.TrimRight(o.baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &hc,
		log:        logger,
		now:        time.Now,
		sleep:      sleepContext,
	}, nil
}

// Close releases idle connections held by the client. The client must not be
// used after Close; typical usage is `defer client.Close()`.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) String() string {
	return fmt.Sprintf("mimiry.Client(base_url=%s)", c.baseURL)
}

// do performs one HTTP exchange: JSON-encode body, send with auth headers,
// classify the status, decode a 2xx response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("api request", "method", method, "path", path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("api response",
		"method", method, "path", path,
		"status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		parsed := map[string]any{}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &parsed)
		}
		return classifyStatus(resp.StatusCode, parsed)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) del(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// sleepContext blocks for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
