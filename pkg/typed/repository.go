package typed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tvault-go/tvault/pkg/core"
)

// DocumentModel is a typed view of a core.Document.
type DocumentModel[T any] struct {
	ID    string
	Data  T        // The typed payload
	Saver Saver[T] // Active Record reference interface
}

// Saver interface avoids circular dependencies or tight coupling with Repository/Service structs.
type Saver[T any] interface {
	Save(ctx context.Context, doc *DocumentModel[T]) error
}

// Save persists the document using the attached saver (Repository or Service).
func (d *DocumentModel[T]) Save(ctx context.Context) error {
	if d.Saver == nil {
		return fmt.Errorf("document is detached (missing Saver)")
	}
	return d.Saver.Save(ctx, d)
}

// Repository wraps a core.Repository to provide type-safe access.
type Repository[T any] struct {
	repo core.Repository
}

// NewRepository creates a new type-safe wrapper around an existing repository.
func NewRepository[T any](repo core.Repository) *Repository[T] {
	return &Repository[T]{repo: repo}
}

// Save persists a typed document. A document without ID is inserted and
// receives the ID assigned by the store.
func (r *Repository[T]) Save(ctx context.Context, doc *DocumentModel[T]) error {
	id, err := r.repo.Save(ctx, doc.Data, doc.ID)
	if err != nil {
		return err
	}
	doc.ID = id

	if doc.Saver == nil {
		doc.Saver = r
	}
	return nil
}

// Get retrieves a document and unmarshals it.
func (r *Repository[T]) Get(ctx context.Context, id string) (*DocumentModel[T], error) {
	coreDoc, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return fromCore(coreDoc, r)
}

// GetMany retrieves several documents, keyed by ID.
func (r *Repository[T]) GetMany(ctx context.Context, ids []string) (map[string]*DocumentModel[T], error) {
	coreDocs, err := r.repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	return fromCoreMap(coreDocs, r)
}

// Delete removes a document by ID.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}

// Helper to convert core.Document to DocumentModel
func fromCore[T any](coreDoc core.Document, saver Saver[T]) (*DocumentModel[T], error) {
	data, err := Convert[T](coreDoc.Data)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", coreDoc.ID, err)
	}

	return &DocumentModel[T]{
		ID:    coreDoc.ID,
		Data:  data,
		Saver: saver,
	}, nil
}

func fromCoreMap[T any](coreDocs map[string]core.Document, saver Saver[T]) (map[string]*DocumentModel[T], error) {
	result := make(map[string]*DocumentModel[T], len(coreDocs))
	for id, d := range coreDocs {
		model, err := fromCore(d, saver)
		if err != nil {
			return nil, err
		}
		result[id] = model
	}
	return result, nil
}

// Convert re-shapes a decoded payload into T through JSON, honouring T's json tags.
func Convert[T any](payload any) (T, error) {
	var data T

	dataBytes, err := json.Marshal(payload)
	if err != nil {
		return data, fmt.Errorf("payload marshal failed: %w", err)
	}
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return data, fmt.Errorf("unmarshal to %T failed: %w", data, err)
	}
	return data, nil
}
