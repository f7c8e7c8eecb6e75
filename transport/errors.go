package transport

import (
	"errors"
	"fmt"
)

// ErrMissingModel is returned by NewClient when params name no model.
var ErrMissingModel = errors.New("transport: model is required")

// BackendError is an opaque non-2xx backend reply. The adapter layer does
// not interpret it; retry policy belongs to the caller.
type BackendError struct {
	StatusCode int
	Body       []byte
}

// Error implements error.
func (e *BackendError) Error() string {
	const maxBody = 256
	body := e.Body
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	return fmt.Sprintf("transport: backend returned status %d: %s", e.StatusCode, body)
}

// Compile-time check.
var _ error = (*BackendError)(nil)
