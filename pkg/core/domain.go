// Document is the central entity of the domain.
package core

import "encoding/json"

// Document is one stored JSON payload identified by a server-assigned ID.
// Data holds the decoded payload (objects, arrays, strings, json.Number, bool or nil).
type Document struct {
	ID   string `json:"id"`
	Data any    `json:"data"`
}

// SessionDocument is a Document that carries application session state.
// ID is the storage document id resolved through search, never the application session id.
type SessionDocument struct {
	ID   string `json:"id"`
	Data any    `json:"data"`
}

// User is the account resolved from an access token.
type User struct {
	UserID     string          `json:"user_id"`
	Username   string          `json:"username"`
	AccountID  string          `json:"account_id,omitempty"`
	Status     string          `json:"status,omitempty"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
}

// UserResult is the outcome of a user lookup.
// When the lookup succeeds User is set. Otherwise User is nil and Result holds the raw
// result code returned by the server, which callers must handle explicitly.
type UserResult struct {
	User   *User
	Result string
}

// OK reports whether the lookup resolved a user.
func (r UserResult) OK() bool {
	return r.User != nil
}

// SessionIDKey is the payload field used to look sessions up by their application id.
const SessionIDKey = "sid"
