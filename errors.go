package googlegen

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for request validation and response parsing.
// All use prefix "googlegen:" for identification. Callers should use
// errors.Is/errors.As.
var (
	ErrEmptyContents      = errors.New("googlegen: contents must not be empty")
	ErrEmptyParts         = errors.New("googlegen: content must have at least one part")
	ErrMissingRole        = errors.New("googlegen: content role is required")
	ErrUnsupportedRole    = errors.New("googlegen: unsupported content role")
	ErrUnsupportedPart    = errors.New("googlegen: content part not supported for this platform or family")
	ErrUnsupportedTools   = errors.New("googlegen: tool declarations are not supported by this family")
	ErrUnknownFamily      = errors.New("googlegen: unknown model family")
	ErrUnknownPlatform    = errors.New("googlegen: unknown platform")
	ErrMissingAPIKey      = errors.New("googlegen: API key is required for the generative language platform")
	ErrMissingCredentials = errors.New("googlegen: credentials are required for the Vertex AI platform")
	ErrMissingProject     = errors.New("googlegen: project is required for the Vertex AI platform")
	ErrMalformedResponse  = errors.New("googlegen: response body does not match the expected shape")
	ErrMissingContent     = errors.New("googlegen: candidate is missing content")
)

// ValidationError reports caller-supplied request data that violates the
// contract for the selected platform and family. Use errors.Is against the
// sentinel errors above to branch on the cause.
type ValidationError struct {
	Platform Platform
	Family   Family
	Detail   string // what was rejected, e.g. "contents[2].parts[0]"
	Err      error
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("googlegen: invalid request (platform %q, family %q): %v", e.Platform, e.Family, e.Err)
	}
	return fmt.Sprintf("googlegen: invalid request (platform %q, family %q): %s: %v", e.Platform, e.Family, e.Detail, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *ValidationError) Unwrap() error { return e.Err }

// ParseError reports a backend response that does not match the expected
// shape for the declared model family. Raw carries the offending fragment
// for diagnostics; no candidate is ever silently dropped.
type ParseError struct {
	Family Family
	Raw    json.RawMessage
	Err    error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("googlegen: parse %q response: %v", e.Family, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *ParseError) Unwrap() error { return e.Err }

// Compile-time checks.
var (
	_ error = (*ValidationError)(nil)
	_ error = (*ParseError)(nil)
)
