package core

import "errors"

// Common errors.
var (
	ErrEmptyID         = errors.New("document ID cannot be empty")
	ErrNotFound        = errors.New("document not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrUnsupported     = errors.New("operation not supported by repository")
)
