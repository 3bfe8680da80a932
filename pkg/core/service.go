package core

import (
	"context"
	"fmt"
)

// Service handles the business logic for documents and sessions.
type Service struct {
	repo Repository
}

// NewService creates a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Repository returns the underlying storage adapter.
func (s *Service) Repository() Repository {
	return s.repo
}

// GetDocument retrieves a document.
func (s *Service) GetDocument(ctx context.Context, id string) (Document, error) {
	if id == "" {
		return Document{}, ErrEmptyID
	}
	return s.repo.Get(ctx, id)
}

// GetDocuments retrieves several documents keyed by ID.
// Every requested ID must be non-empty.
func (s *Service) GetDocuments(ctx context.Context, ids []string) (map[string]Document, error) {
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("id at position %d: %w", i, ErrEmptyID)
		}
	}
	return s.repo.GetMany(ctx, ids)
}

// SaveDocument inserts data as a new document when id is empty, or updates the document otherwise.
func (s *Service) SaveDocument(ctx context.Context, data any, id string) (string, error) {
	return s.repo.Save(ctx, data, id)
}

// DeleteDocument removes a document.
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	return s.repo.Delete(ctx, id)
}

// GetUser resolves an access token if the repository supports it.
func (s *Service) GetUser(ctx context.Context, accessToken string) (UserResult, error) {
	r, ok := s.repo.(UserResolver)
	if !ok {
		return UserResult{}, fmt.Errorf("user lookup: %w", ErrUnsupported)
	}
	return r.GetUser(ctx, accessToken)
}

// GetSession looks a session up by its application id. A nil document means not found.
func (s *Service) GetSession(ctx context.Context, sid string) (*SessionDocument, error) {
	sr, err := s.sessions()
	if err != nil {
		return nil, err
	}
	if sid == "" {
		return nil, ErrEmptyID
	}
	return sr.GetSession(ctx, sid)
}

// SaveSession inserts or updates a session document.
func (s *Service) SaveSession(ctx context.Context, data any, sid string) (string, error) {
	sr, err := s.sessions()
	if err != nil {
		return "", err
	}
	return sr.SaveSession(ctx, data, sid)
}

// RemoveSession deletes a session, reporting whether one existed.
func (s *Service) RemoveSession(ctx context.Context, sid string) (bool, error) {
	sr, err := s.sessions()
	if err != nil {
		return false, err
	}
	if sid == "" {
		return false, ErrEmptyID
	}
	return sr.RemoveSession(ctx, sid)
}

// Sessions exposes the session capability of the repository, if any.
func (s *Service) Sessions() (SessionRepository, bool) {
	sr, ok := s.repo.(SessionRepository)
	return sr, ok
}

func (s *Service) sessions() (SessionRepository, error) {
	sr, ok := s.Sessions()
	if !ok {
		return nil, fmt.Errorf("sessions: %w", ErrUnsupported)
	}
	return sr, nil
}
