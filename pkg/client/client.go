package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-gallery/pkg/csrf"
	"github.com/goliatone/go-gallery/pkg/endpoints"
	"github.com/goliatone/go-gallery/pkg/form"
)

const (
	// DefaultTimeout bounds a single backend round trip.
	DefaultTimeout = 30 * time.Second
	// RequestIDHeader correlates client log lines with backend logs.
	RequestIDHeader = "X-Request-ID"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its CheckRedirect is
// overwritten so redirects surface as results.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			copied := *hc
			c.http = &copied
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithContract overrides the endpoint contract used to resolve delete paths.
func WithContract(contract *endpoints.Contract) Option {
	return func(c *Client) {
		if contract != nil {
			c.contract = contract
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestID overrides the request id generator.
func WithRequestID(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// Client is a backend transport satisfying form.Submitter and the list's
// deleter contract.
type Client struct {
	base      *url.URL
	token     csrf.Token
	http      *http.Client
	timeout   time.Duration
	contract  *endpoints.Contract
	logger    *slog.Logger
	requestID func() string
}

// New builds a client for the backend rooted at baseURL.
func New(baseURL string, token csrf.Token, options ...Option) (*Client, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		base:      base,
		token:     token,
		http:      &http.Client{},
		timeout:   DefaultTimeout,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		requestID: func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.contract == nil {
		c.contract, err = endpoints.Default()
		if err != nil {
			return nil, err
		}
	}
	c.http.Timeout = c.timeout
	c.http.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return c, nil
}

func parseBase(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrBaseURL)
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrBaseURL, base.Scheme)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrBaseURL)
	}
	return base, nil
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string {
	if c == nil || c.base == nil {
		return ""
	}
	return c.base.String()
}

// Resolve joins an endpoint path onto the base URL, keeping any base path prefix.
func (c *Client) Resolve(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// Submit posts a form submission as multipart/form-data.
func (c *Client) Submit(ctx context.Context, sub form.Submission) (form.SubmitResult, error) {
	if c == nil {
		return form.SubmitResult{}, fmt.Errorf("client: nil client")
	}
	var body bytes.Buffer
	contentType, err := sub.Encode(&body)
	if err != nil {
		return form.SubmitResult{}, fmt.Errorf("client: encode submission: %w", err)
	}

	method := sub.Method
	if method == "" {
		method = http.MethodPost
	}
	req, err := c.newRequest(ctx, method, sub.Action, &body)
	if err != nil {
		return form.SubmitResult{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/html")

	return c.do(req, sub.Action)
}

// Delete posts an empty body to the delete endpoint for id with the token header.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client: nil client")
	}
	if c.token.IsZero() {
		return ErrMissingToken
	}
	endpoint, err := c.contract.Lookup(endpoints.OpDelete)
	if err != nil {
		return err
	}
	path, err := endpoint.ForID(id)
	if err != nil {
		return err
	}
	method := endpoint.Method
	if method == "" {
		method = http.MethodPost
	}
	req, err := c.newRequest(ctx, method, path, http.NoBody)
	if err != nil {
		return err
	}
	c.token.Apply(req)

	_, err = c.do(req, path)
	return err
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Resolve(path), body)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set(RequestIDHeader, c.requestID())
	return req, nil
}

func (c *Client) do(req *http.Request, path string) (form.SubmitResult, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("backend request failed",
			"method", req.Method,
			"path", path,
			"request_id", req.Header.Get(RequestIDHeader),
			"err", err,
		)
		return form.SubmitResult{}, fmt.Errorf("client: %s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	c.logger.Debug("backend request",
		"method", req.Method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(RequestIDHeader),
		"duration", time.Since(start),
	)

	result := form.SubmitResult{
		StatusCode: resp.StatusCode,
		Location:   resp.Header.Get("Location"),
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return result, StatusError{Code: resp.StatusCode, Method: req.Method, Path: path}
	}
	return result, nil
}
