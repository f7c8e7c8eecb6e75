// Package transport submits serialized googlegen requests over HTTP and
// hands raw response bytes back to the adapter layer. It owns endpoint
// resolution, per-platform authentication, SSE stream consumption, and
// retry-free error surfacing; it never interprets response payloads.
package transport
