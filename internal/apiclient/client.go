package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tinytelemetry/subwatch/internal/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// Client implements model.SnapshotSource over the backend's REST API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// New creates a client for the backend at baseURL. An empty baseURL uses
// model.DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = model.DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		timeout: model.DefaultRequestTimeout,
		http:    &http.Client{},
		tracer:  otel.Tracer("github.com/tinytelemetry/subwatch/internal/apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchCount performs GET /api/count.
func (c *Client) FetchCount(ctx context.Context) (*model.Snapshot, error) {
	var snap model.Snapshot
	if err := c.call(ctx, "FetchCount", http.MethodGet, model.PathCount, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Refresh performs POST /api/refresh.
func (c *Client) Refresh(ctx context.Context) (*model.RefreshResponse, error) {
	var resp model.RefreshResponse
	if err := c.call(ctx, "Refresh", http.MethodPost, model.PathRefresh, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health performs GET /health.
func (c *Client) Health(ctx context.Context) (*model.Health, error) {
	var h model.Health
	if err := c.call(ctx, "Health", http.MethodGet, model.PathHealth, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// call issues one request and decodes a 2xx JSON body into dest.
func (c *Client) call(ctx context.Context, op, method, path string, dest interface{}) (err error) {
	ctx, span := c.tracer.Start(ctx, "apiclient."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("apiclient: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("apiclient: read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: snippet(body)}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("apiclient: decode %s %s: %w", method, path, err)
	}
	return nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
