// Package memory provides an in-process implementation of the core ports.
//
// It mirrors the remote vault semantics (server-assigned ids, JSON payloads
// copied on write, sessions resolved through their "sid" field) and is meant
// for tests and offline development. Nothing survives the process.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/tvault-go/tvault/pkg/core"
)

// Repository stores documents in memory. It is safe for concurrent use.
type Repository struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	order []string
	users map[string]core.User
}

// Compile-time checks that Repository implements the core ports.
var (
	_ core.Repository        = (*Repository)(nil)
	_ core.SessionRepository = (*Repository)(nil)
	_ core.UserResolver      = (*Repository)(nil)
)

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		docs:  make(map[string][]byte),
		users: make(map[string]core.User),
	}
}

// AddUser registers a user resolvable through accessToken.
func (r *Repository) AddUser(accessToken string, u core.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[accessToken] = u
}

// Get implements core.Repository.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(id)
}

func (r *Repository) get(id string) (core.Document, error) {
	raw, ok := r.docs[id]
	if !ok {
		return core.Document{}, fmt.Errorf("document %q: %w", id, core.ErrNotFound)
	}
	data, err := decode(raw)
	if err != nil {
		return core.Document{}, err
	}
	return core.Document{ID: id, Data: data}, nil
}

// GetMany implements core.Repository. Any missing id fails the whole call.
func (r *Repository) GetMany(ctx context.Context, ids []string) (map[string]core.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]core.Document, len(ids))
	for _, id := range ids {
		doc, err := r.get(id)
		if err != nil {
			return nil, err
		}
		out[id] = doc
	}
	return out, nil
}

// Save implements core.Repository. Inserts get a random UUID.
func (r *Repository) Save(ctx context.Context, data any, id string) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(raw, id)
}

func (r *Repository) save(raw []byte, id string) (string, error) {
	if id == "" {
		id = uuid.NewString()
		r.order = append(r.order, id)
	} else if _, ok := r.docs[id]; !ok {
		return "", fmt.Errorf("document %q: %w", id, core.ErrNotFound)
	}
	r.docs[id] = raw
	return id, nil
}

// Delete implements core.Repository.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delete(id)
}

func (r *Repository) delete(id string) error {
	if _, ok := r.docs[id]; !ok {
		return fmt.Errorf("document %q: %w", id, core.ErrNotFound)
	}
	delete(r.docs, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

// GetSession implements core.SessionRepository. The oldest matching document wins.
func (r *Repository) GetSession(ctx context.Context, sid string) (*core.SessionDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findSession(sid)
}

func (r *Repository) findSession(sid string) (*core.SessionDocument, error) {
	for _, id := range r.order {
		var fields map[string]any
		if json.Unmarshal(r.docs[id], &fields) != nil {
			continue
		}
		if v, _ := fields[core.SessionIDKey].(string); v != sid {
			continue
		}
		doc, err := r.get(id)
		if err != nil {
			return nil, err
		}
		return &core.SessionDocument{ID: id, Data: doc.Data}, nil
	}
	return nil, nil
}

// SaveSession implements core.SessionRepository.
func (r *Repository) SaveSession(ctx context.Context, data any, sid string) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if sid == "" {
		return r.save(raw, "")
	}
	sess, err := r.findSession(sid)
	if err != nil {
		return "", err
	}
	if sess == nil {
		return "", fmt.Errorf("update session %q: %w", sid, core.ErrSessionNotFound)
	}
	return r.save(raw, sess.ID)
}

// RemoveSession implements core.SessionRepository.
func (r *Repository) RemoveSession(ctx context.Context, sid string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, err := r.findSession(sid)
	if err != nil || sess == nil {
		return false, err
	}
	return true, r.delete(sess.ID)
}

// GetUser implements core.UserResolver. Unknown tokens yield the "error" result code.
func (r *Repository) GetUser(ctx context.Context, accessToken string) (core.UserResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[accessToken]
	if !ok {
		return core.UserResult{Result: "error"}, nil
	}
	return core.UserResult{User: &u, Result: "success"}, nil
}

func decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
