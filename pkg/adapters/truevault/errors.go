package truevault

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tvault-go/tvault/pkg/core"
)

// ErrInvalidConfig is returned by New when a required setting is missing.
var ErrInvalidConfig = errors.New("truevault: invalid config")

// TransportError is a network failure or a non-2xx response from the API.
type TransportError struct {
	Method string
	URL    string

	// StatusCode is zero when no response was received.
	StatusCode int

	// Body is the raw response body of a non-2xx response.
	Body string

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("truevault: %s %s: %v", e.Method, e.URL, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("truevault: %s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("truevault: %s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets a 404 response match core.ErrNotFound.
func (e *TransportError) Is(target error) bool {
	return target == core.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// SaveError is returned when the server answers an insert or update with a result other than "success".
type SaveError struct {
	Result string
}

func (e *SaveError) Error() string {
	return "truevault: couldn't save document data: " + e.Result
}

// SearchError is returned when a session search matched but the server did not report success.
type SearchError struct {
	Result string
}

func (e *SearchError) Error() string {
	return "truevault: search failed: " + e.Result
}

// ParseError wraps malformed base64 or JSON received from the server.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("truevault: parse %s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
