package platform

import (
	"fmt"

	"github.com/tvault-go/tvault/pkg/adapters/memory"
	"github.com/tvault-go/tvault/pkg/adapters/truevault"
	"github.com/tvault-go/tvault/pkg/core"
)

// Adapter names accepted by WithAdapter and the "adapter" config key.
const (
	AdapterTrueVault = "truevault"
	AdapterMemory    = "memory"
)

// New creates a domain service on top of the repository selected by cfg and opts.
//
//	svc, err := tvault.New(cfg, tvault.WithLogger(logger))
func New(cfg Config, opts ...Option) (*core.Service, error) {
	repo, err := Init(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewService(repo), nil
}

// Init builds the configured core.Repository without wrapping it in a service.
func Init(cfg Config, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	if cfg.Adapter != "" {
		o.adapter = cfg.Adapter
	}
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Initialize based on Adapter
	switch o.adapter {
	case AdapterTrueVault:
		return initTrueVault(cfg, o)
	case AdapterMemory:
		if o.logger != nil {
			o.logger.Warn("using in-memory adapter, documents are not persisted")
		}
		return memory.NewRepository(), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initTrueVault handles the initialization logic for the TrueVault adapter.
func initTrueVault(cfg Config, o *options) (core.Repository, error) {
	var clientOpts []truevault.Option

	baseURL := cfg.BaseURL
	if o.baseURL != "" {
		baseURL = o.baseURL
	}
	if baseURL != "" {
		clientOpts = append(clientOpts, truevault.WithBaseURL(baseURL))
	}

	timeout := cfg.Timeout
	if o.timeout > 0 {
		timeout = o.timeout
	}
	if timeout > 0 {
		clientOpts = append(clientOpts, truevault.WithTimeout(timeout))
	}

	if o.httpClient != nil {
		clientOpts = append(clientOpts, truevault.WithHTTPClient(o.httpClient))
	}
	if o.batchSize > 0 {
		clientOpts = append(clientOpts, truevault.WithBatchSize(o.batchSize))
	}
	if o.logger != nil {
		clientOpts = append(clientOpts, truevault.WithLogger(o.logger))
		o.logger.Debug("initializing truevault adapter", "vault_id", cfg.VaultID, "base_url", baseURL)
	}

	return truevault.New(cfg.TrueVault(), clientOpts...)
}
