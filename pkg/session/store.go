// Package session implements a session store on top of core.SessionRepository.
//
// Sessions are plain documents whose payload carries the application session id
// under the "sid" key. The store generates ids, keeps that key in sync with the
// id it was asked to write, and turns "not found" into a boolean instead of an error.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/google/uuid"

	"github.com/tvault-go/tvault/pkg/core"
)

// Values is the state of one session.
type Values map[string]any

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug traces of store operations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithIDGenerator replaces the default UUIDv4 session id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Store persists sessions through a core.SessionRepository.
type Store struct {
	repo   core.SessionRepository
	logger *slog.Logger
	newID  func() string
}

// NewStore creates a session store.
func NewStore(repo core.SessionRepository, opts ...Option) *Store {
	s := &Store{
		repo:  repo,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new session and returns its generated id.
func (s *Store) Create(ctx context.Context, values Values) (string, error) {
	sid := s.newID()
	if _, err := s.repo.SaveSession(ctx, withSID(values, sid), ""); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	s.debug("session created", sid)
	return sid, nil
}

// Get loads the session sid. The boolean is false when no such session exists.
func (s *Store) Get(ctx context.Context, sid string) (Values, bool, error) {
	if sid == "" {
		return nil, false, core.ErrEmptyID
	}
	doc, err := s.repo.GetSession(ctx, sid)
	if err != nil {
		return nil, false, fmt.Errorf("get session: %w", err)
	}
	if doc == nil {
		return nil, false, nil
	}

	values, ok := doc.Data.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("session %s: payload is %T, not an object", sid, doc.Data)
	}
	return Values(values), true, nil
}

// Set writes values as the state of session sid, creating the session when it does not exist yet.
func (s *Store) Set(ctx context.Context, sid string, values Values) error {
	if sid == "" {
		return core.ErrEmptyID
	}
	data := withSID(values, sid)

	_, err := s.repo.SaveSession(ctx, data, sid)
	if errors.Is(err, core.ErrSessionNotFound) {
		s.debug("session missing, inserting", sid)
		_, err = s.repo.SaveSession(ctx, data, "")
	}
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Destroy removes session sid. Destroying an unknown session is not an error.
func (s *Store) Destroy(ctx context.Context, sid string) error {
	if sid == "" {
		return core.ErrEmptyID
	}
	removed, err := s.repo.RemoveSession(ctx, sid)
	if err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	if removed {
		s.debug("session destroyed", sid)
	}
	return nil
}

func (s *Store) debug(msg, sid string) {
	if s.logger != nil {
		s.logger.Debug(msg, "sid", sid)
	}
}

// withSID copies values and stamps the session id, leaving the caller's map untouched.
func withSID(values Values, sid string) map[string]any {
	out := make(map[string]any, len(values)+1)
	maps.Copy(out, values)
	out[core.SessionIDKey] = sid
	return out
}
