package tvault

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tvault-go/tvault/internal/platform"
	"github.com/tvault-go/tvault/pkg/core"
	"github.com/tvault-go/tvault/pkg/session"
	"github.com/tvault-go/tvault/pkg/typed"
)

// --- Types ---

// Config is the connection configuration of a vault.
type Config = platform.Config

// DocumentModel is a public alias for the typed document model.
type DocumentModel[T any] = typed.DocumentModel[T]

// TypedRepository is a public alias for the typed repository.
type TypedRepository[T any] = typed.Repository[T]

// TypedService is a public alias for the typed service.
type TypedService[T any] = typed.Service[T]

// SessionStore is a public alias for the session store.
type SessionStore = session.Store

// --- Configuration ---

// Option defines a functional option for configuring tvault.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name ("truevault" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithHTTPClient sets the HTTP client used to reach the API.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// WithBaseURL overrides the API root.
func WithBaseURL(url string) Option {
	return platform.WithBaseURL(url)
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return platform.WithTimeout(d)
}

// WithBatchSize caps the number of ids per bulk read request (1 to 100).
func WithBatchSize(n int) Option {
	return platform.WithBatchSize(n)
}

// LoadConfig reads a YAML config file and applies TVAULT_* environment overrides.
func LoadConfig(path string) (Config, error) {
	return platform.LoadConfig(path)
}

// FindConfig looks upwards from dir for .tvault.yaml or tvault.yaml.
func FindConfig(dir string) (string, error) {
	return platform.FindConfig(dir)
}

// --- Factory ---

// New creates a new tvault Service.
func New(cfg Config, opts ...Option) (*core.Service, error) {
	return platform.New(cfg, opts...)
}

// Init creates the configured repository without wrapping it in a service.
func Init(cfg Config, opts ...Option) (core.Repository, error) {
	return platform.Init(cfg, opts...)
}

// --- Typed Factories ---

// NewTypedRepository creates a type-safe wrapper around an existing repository.
func NewTypedRepository[T any](repo core.Repository) *typed.Repository[T] {
	return typed.NewRepository[T](repo)
}

// NewTypedService creates a type-safe wrapper around an existing service.
func NewTypedService[T any](svc *core.Service) *typed.Service[T] {
	return typed.NewService[T](svc)
}

// OpenTypedService simplifies creating a TypedService from a config.
func OpenTypedService[T any](cfg Config, opts ...Option) (*typed.Service[T], error) {
	svc, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return typed.NewService[T](svc), nil
}

// --- Sessions ---

// NewSessionStore creates a session store on the service's repository.
// It fails with core.ErrUnsupported when the repository cannot store sessions.
func NewSessionStore(svc *core.Service, opts ...session.Option) (*session.Store, error) {
	repo, ok := svc.Sessions()
	if !ok {
		return nil, core.ErrUnsupported
	}
	return session.NewStore(repo, opts...), nil
}
