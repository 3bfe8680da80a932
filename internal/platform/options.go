package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tvault-go/tvault/pkg/core"
)

// options holds the internal configuration for the tvault service.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	adapter    string
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	batchSize  int
}

// Option defines a functional option for configuring tvault.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterTrueVault,
	}
}

// WithLogger sets the logger for the service and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock).
// If provided, adapter selection and Config validation are skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter allows specifying the storage adapter to use by name.
// Defaults to "truevault".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithHTTPClient sets the HTTP client of the truevault adapter.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithBaseURL overrides the API root, taking precedence over Config.BaseURL.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithTimeout overrides the HTTP timeout, taking precedence over Config.Timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithBatchSize caps the number of ids per bulk read request.
// Zero means default (100).
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}
