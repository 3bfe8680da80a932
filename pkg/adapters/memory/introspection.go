package memory

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Documents int `json:"documents"`
	Users     int `json:"users"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{
		Documents: len(r.docs),
		Users:     len(r.users),
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
