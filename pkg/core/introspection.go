package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	RepositoryType string `json:"repository_type"`
	Sessions       bool   `json:"sessions"`
	Users          bool   `json:"users"`
	Repository     any    `json:"repository,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	state := ServiceState{RepositoryType: "unknown"}
	if s.repo == nil {
		return state
	}

	state.RepositoryType = "repository"
	if comp, ok := s.repo.(introspection.Component); ok {
		state.RepositoryType = comp.ComponentType()
	}
	if intro, ok := s.repo.(introspection.Introspectable); ok {
		state.Repository = intro.State()
	}
	_, state.Sessions = s.repo.(SessionRepository)
	_, state.Users = s.repo.(UserResolver)
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
