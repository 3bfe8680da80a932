package core

import "context"

// Repository defines the contract for storing and retrieving documents.
// Adhering to this interface keeps the core independent of the remote service
// (TrueVault today, anything with the same document model tomorrow).
type Repository interface {
	// Get retrieves a single document payload by its ID.
	Get(ctx context.Context, id string) (Document, error)

	// GetMany retrieves several documents at once, keyed by ID.
	GetMany(ctx context.Context, ids []string) (map[string]Document, error)

	// Save inserts the payload when id is empty, or updates the document otherwise.
	// It returns the ID of the stored document.
	Save(ctx context.Context, data any, id string) (string, error)

	// Delete removes a document by its ID.
	Delete(ctx context.Context, id string) error
}

// SessionRepository defines an interface for repositories that can store session documents,
// looked up by the application session id instead of the storage id.
type SessionRepository interface {
	// GetSession returns the session document, or nil when no session matches.
	GetSession(ctx context.Context, sid string) (*SessionDocument, error)

	// SaveSession inserts a new session when sid is empty, otherwise updates the
	// session currently stored under sid. Returns the storage document ID.
	SaveSession(ctx context.Context, data any, sid string) (string, error)

	// RemoveSession deletes the session, reporting false when none matched.
	RemoveSession(ctx context.Context, sid string) (bool, error)
}

// UserResolver defines an interface for repositories that can resolve access tokens.
type UserResolver interface {
	GetUser(ctx context.Context, accessToken string) (UserResult, error)
}
