package truevault

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tvault-go/tvault/pkg/core"
)

const (
	// DefaultBaseURL is the root of the TrueVault v1 API.
	DefaultBaseURL = "https://api.truevault.com/v1/"

	// MaxBatchSize is the number of document ids TrueVault accepts in one read request.
	MaxBatchSize = 100
)

// Config holds the credentials and identifiers of one vault.
type Config struct {
	// APIKey is sent as the Basic auth username with an empty password.
	APIKey string

	// VaultID selects the vault all document operations target.
	VaultID string

	// DocumentSchemaID is attached to every document written through SaveDocument.
	DocumentSchemaID string

	// SessionSchemaID is attached to session documents and used to scope session searches.
	// Optional.
	SessionSchemaID string
}

// Client talks to one TrueVault vault. It is immutable after New and safe for concurrent use.
type Client struct {
	cfg        Config
	baseURL    string
	dbURL      string
	authHeader string
	batchSize  int
	httpClient *http.Client
	logger     *slog.Logger

	requests atomic.Int64
}

// Compile-time checks that Client implements the core ports.
var (
	_ core.Repository        = (*Client)(nil)
	_ core.SessionRepository = (*Client)(nil)
	_ core.UserResolver      = (*Client)(nil)
)

// New creates a client for the vault described by cfg. It performs no I/O.
func New(cfg Config, opts ...Option) (*Client, error) {
	switch {
	case cfg.APIKey == "":
		return nil, fmt.Errorf("%w: api key is required", ErrInvalidConfig)
	case cfg.VaultID == "":
		return nil, fmt.Errorf("%w: vault id is required", ErrInvalidConfig)
	case cfg.DocumentSchemaID == "":
		return nil, fmt.Errorf("%w: document schema id is required", ErrInvalidConfig)
	}

	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    DefaultBaseURL,
		batchSize:  MaxBatchSize,
		httpClient: &http.Client{},
		logger:     o.logger,
	}
	if o.baseURL != "" {
		c.baseURL = strings.TrimRight(o.baseURL, "/") + "/"
	}
	if o.batchSize > 0 {
		c.batchSize = o.batchSize
	}
	if o.httpClient != nil {
		c.httpClient = o.httpClient
	} else if o.timeout > 0 {
		c.httpClient.Timeout = o.timeout
	}

	c.dbURL = c.baseURL + "vaults/" + url.PathEscape(cfg.VaultID)
	c.authHeader = basicAuth(cfg.APIKey)

	return c, nil
}

// basicAuth builds the header value for an API key used as username with an empty password.
func basicAuth(apiKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey+":"))
}

func (c *Client) documentsURL() string {
	return c.dbURL + "/documents"
}

func (c *Client) documentURL(ids ...string) string {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = url.PathEscape(id)
	}
	return c.documentsURL() + "/" + strings.Join(escaped, ",")
}

// do executes a request and returns the body of a 2xx response.
// Any other outcome is reported as a *TransportError.
func (c *Client) do(ctx context.Context, method, target, authorization string, form url.Values) ([]byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	req.Header.Set("Authorization", authorization)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.requests.Add(1)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, StatusCode: resp.StatusCode, Err: err}
	}

	if c.logger != nil {
		c.logger.Debug("truevault request",
			"method", method,
			"path", req.URL.Path,
			"status", resp.StatusCode,
			"duration", time.Since(start),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}
	return data, nil
}
