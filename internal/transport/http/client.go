// Package httptransport is the authenticated HTTP pipeline every backend call goes through.
package httptransport

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

	"go.uber.org/zap"

	"example.com/fitnessclient/internal/domain"
	"example.com/fitnessclient/internal/session"
)

const maxErrorBody = 4 << 10

// ClientConfig contains tunables for the backend client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Option configures optional behaviour for the Client.
type Option func(*Client)

// WithLogger overrides the logger used to report requests and session resets.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithNavigator sets where the application goes after an unauthorized response.
func WithNavigator(nav Navigator) Option {
	return func(c *Client) {
		c.navigator = nav
	}
}

// WithBaseTransport replaces the round tripper beneath the auth layer.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.base = rt
	}
}

// Client sends requests to the fitness backend with the session attached.
type Client struct {
	baseURL   string
	store     session.Store
	navigator Navigator
	logger    *zap.Logger
	base      http.RoundTripper
	http      *http.Client
}

// NewClient constructs a Client. The auth policy is installed as the client's
// transport, so every request sent through it is decorated and checked for 401.
func NewClient(cfg ClientConfig, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		store:     store,
		navigator: NoopNavigator{},
		logger:    zap.NewNop(),
		base:      http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(c)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	var host string
	if u, err := url.Parse(c.baseURL); err == nil {
		host = u.Host
	}
	c.http = &http.Client{
		Timeout: timeout,
		Transport: &authTransport{
			host:      host,
			base:      c.base,
			store:     c.store,
			navigator: c.navigator,
			logger:    c.logger,
		},
	}
	return c
}

// BaseURL returns the backend root all paths are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Send dispatches req. Non-2xx responses are returned as *domain.TransportError
// with the body consumed; network failures are wrapped the same way.
func (c *Client) Send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Method: req.Method, Path: req.URL.Path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.TransportError{
			Method: req.Method,
			Path:   req.URL.Path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}

// Call describes one JSON round-trip.
type Call struct {
	Method string
	// Route is the path template used as the metrics label, e.g. /activities/{id}.
	Route string
	// Path is the concrete path; Route is used when empty.
	Path   string
	Header http.Header
	Body   any
	Out    any
}

// Do encodes call.Body, sends the request and decodes the response into call.Out.
func (c *Client) Do(ctx context.Context, call Call) error {
	path := call.Path
	if path == "" {
		path = call.Route
	}

	var body io.Reader
	if call.Body != nil {
		raw, err := json.Marshal(call.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", call.Method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(withRoute(ctx, call.Route), call.Method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	for key, values := range call.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if call.Out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(call.Out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode %s %s: empty response body", call.Method, path)
		}
		return fmt.Errorf("decode %s %s: %w", call.Method, path, err)
	}
	return nil
}
