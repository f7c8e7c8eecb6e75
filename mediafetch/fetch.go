// Package mediafetch downloads media over https into inline blob parts.
// The generative language platform rejects file-reference parts, so callers
// targeting it convert a URL into a googlegen.BlobPart before building the
// request.
package mediafetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/skosovsky/googlegen"
)

// DefaultMaxBodySize is the default limit for a media download (20 MiB,
// the inline-data ceiling the backends accept).
const DefaultMaxBodySize = 20 << 20

var (
	// ErrUnsafeScheme is returned when the URL scheme is not https.
	ErrUnsafeScheme = errors.New("mediafetch: only https scheme is allowed")
	// ErrBodyTooLarge is returned when the response exceeds the size limit.
	ErrBodyTooLarge = errors.New("mediafetch: response body exceeds size limit")
	// ErrUnsupportedType is returned when the Content-Type is not an
	// accepted media type.
	ErrUnsupportedType = errors.New("mediafetch: unsupported content type")
)

// AllowedMIMEPrefixes are Content-Type prefixes accepted as inline media.
// Do not modify.
var AllowedMIMEPrefixes = []string{"image/", "audio/", "video/", "application/pdf"}

// DefaultClient is the HTTP client used for fetching. Override in tests to
// use a custom client (e.g. TLS with InsecureSkipVerify).
var DefaultClient = http.DefaultClient

// Fetch downloads a URL with ctx, a size limit, and a media-type check.
// Only https is allowed. maxBytes <= 0 uses DefaultMaxBodySize.
func Fetch(ctx context.Context, rawURL string, maxBytes int64) (data []byte, mimeType string, err error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("mediafetch: parse URL: %w", err)
	}
	if u.Scheme != "https" {
		return nil, "", ErrUnsafeScheme
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("mediafetch: new request: %w", err)
	}
	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("mediafetch: do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("mediafetch: status %s", resp.Status)
	}
	mimeType = resp.Header.Get("Content-Type")
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	allowed := false
	for _, prefix := range AllowedMIMEPrefixes {
		if strings.HasPrefix(mimeType, prefix) {
			allowed = true
			break
		}
	}
	if mimeType != "" && !allowed {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	data, err = io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("mediafetch: read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, "", ErrBodyTooLarge
	}
	return data, mimeType, nil
}

// FetchBlobPart downloads a URL and wraps it as an inline blob part, ready
// to use on either platform.
func FetchBlobPart(ctx context.Context, rawURL string, maxBytes int64) (googlegen.BlobPart, error) {
	data, mimeType, err := Fetch(ctx, rawURL, maxBytes)
	if err != nil {
		return googlegen.BlobPart{}, err
	}
	return googlegen.BlobPart{MIMEType: mimeType, Data: data}, nil
}
