package truevault

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Option configures the client.
type Option func(*options) error

type options struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	batchSize  int
}

// WithBaseURL overrides the API root. Default: DefaultBaseURL.
func WithBaseURL(url string) Option {
	return func(o *options) error {
		o.baseURL = url
		return nil
	}
}

// WithTimeout sets the HTTP client timeout. Zero keeps the transport default (no timeout).
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		o.timeout = d
		return nil
	}
}

// WithHTTPClient provides a fully custom *http.Client.
// When set, WithTimeout is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) error {
		o.httpClient = client
		return nil
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithBatchSize lowers the number of ids sent per bulk read request.
// It must be between 1 and MaxBatchSize.
func WithBatchSize(n int) Option {
	return func(o *options) error {
		if n < 1 || n > MaxBatchSize {
			return fmt.Errorf("batch size %d out of range [1, %d]", n, MaxBatchSize)
		}
		o.batchSize = n
		return nil
	}
}
