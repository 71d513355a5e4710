package client

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nao1215/senderplus/internal/model"
)

// Default client settings.
const (
	// DefaultTimeout is generous because the hosted service runs on a
	// free tier that cold-starts; the first request after idle can take
	// tens of seconds.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxBodySize limits how much of a response body is read.
	// Package records are small; 1MB leaves ample headroom while keeping
	// a misbehaving server from exhausting memory.
	DefaultMaxBodySize = 1 * 1024 * 1024
)

// Client talks to the delivery service. One Client instance corresponds to
// one workflow instance: it owns its in-flight latches exclusively and no
// submission or package state is shared between Clients.
//
// Design decision: We wrap *http.Client in a struct rather than passing it
// to each call because the base URL, timeout, and body limit must stay
// consistent across the three operations, and because the latches belong
// with the connection they guard.
type Client struct {
	// baseURL is the service root, without a trailing slash.
	baseURL string

	// httpClient performs the requests. Its Timeout bounds each attempt;
	// the client itself enforces no additional deadline.
	httpClient *http.Client

	// logger receives diagnostic detail that is never shown to the user.
	logger *slog.Logger

	// maxBodySize limits response body reads.
	maxBodySize int64

	// submitting is the "submission in progress" latch. Set before the
	// request is issued and cleared on a deferred path so it is released
	// even when the request fails.
	submitting atomic.Bool

	// advancing tracks in-flight advance requests keyed by tracking ID,
	// so a second advance for the same package is rejected while the
	// first is outstanding.
	advancing sync.Map
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
// Used by tests to point at an httptest server transport or to inject a
// client with custom proxy settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger for diagnostic output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// NewClient creates a Client for the service at baseURL.
// The base URL must be absolute with an http or https scheme; a trailing
// slash is removed so path joining stays uniform. The constructor performs
// no network I/O.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, ErrInvalidBaseURL
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		logger:      slog.Default(),
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the service root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PhotoURL resolves a package's relative photo path against the service
// base. Returns an empty string when the package has no photo. Absolute
// photo URLs are returned unchanged.
func (c *Client) PhotoURL(pkg *model.Package) string {
	if pkg == nil || pkg.PhotoURL == "" {
		return ""
	}
	if strings.HasPrefix(pkg.PhotoURL, "http://") || strings.HasPrefix(pkg.PhotoURL, "https://") {
		return pkg.PhotoURL
	}
	return c.baseURL + "/" + strings.TrimLeft(pkg.PhotoURL, "/")
}

// readBody reads at most maxBodySize bytes of a response body.
// The excerpt is used for diagnostic logging and success-body parsing only.
func (c *Client) readBody(body io.Reader) []byte {
	data, err := io.ReadAll(io.LimitReader(body, c.maxBodySize))
	if err != nil {
		// A partial body is still useful for logging; parsing will fail
		// on its own if the payload is truncated.
		c.logger.Debug("response body read failed", "error", err)
	}
	return data
}

// bodyExcerpt shortens a response body for log records.
func bodyExcerpt(data []byte) string {
	const maxExcerpt = 512
	if len(data) > maxExcerpt {
		return string(data[:maxExcerpt]) + "..."
	}
	return string(data)
}
