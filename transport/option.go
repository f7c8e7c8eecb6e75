package transport

import "net/http"

// Option configures a Client (functional options pattern).
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (e.g. for custom TLS
// or timeouts).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithTokenSource sets the bearer token source for the Vertex AI platform.
// When unset, the connection's Credentials value is used as a static token.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.tokens = src
	}
}
