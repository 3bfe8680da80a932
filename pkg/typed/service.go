package typed

import (
	"context"

	"github.com/tvault-go/tvault/pkg/core"
)

// Service wraps a core.Service to provide type-safe access with the service's validation.
type Service[T any] struct {
	svc *core.Service
}

// NewService creates a new typed service wrapper.
func NewService[T any](svc *core.Service) *Service[T] {
	return &Service[T]{svc: svc}
}

// Save persists a typed document using the core Service.
func (s *Service[T]) Save(ctx context.Context, doc *DocumentModel[T]) error {
	id, err := s.svc.SaveDocument(ctx, doc.Data, doc.ID)
	if err != nil {
		return err
	}
	doc.ID = id

	if doc.Saver == nil {
		doc.Saver = s
	}
	return nil
}

// Get retrieves a document via Service.
func (s *Service[T]) Get(ctx context.Context, id string) (*DocumentModel[T], error) {
	coreDoc, err := s.svc.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromCore(coreDoc, s)
}

// GetMany retrieves several documents via Service.
func (s *Service[T]) GetMany(ctx context.Context, ids []string) (map[string]*DocumentModel[T], error) {
	coreDocs, err := s.svc.GetDocuments(ctx, ids)
	if err != nil {
		return nil, err
	}
	return fromCoreMap(coreDocs, s)
}

// Delete removes a document via Service.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	return s.svc.DeleteDocument(ctx, id)
}
