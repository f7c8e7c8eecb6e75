package mediafetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewTLSServer(handler)
	prev := DefaultClient
	DefaultClient = srv.Client()
	t.Cleanup(func() {
		DefaultClient = prev
		srv.Close()
	})
	return srv
}

func TestFetch_Image(t *testing.T) {
	srv := withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png; charset=binary")
		_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	})

	data, mimeType, err := Fetch(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)
}

func TestFetch_RejectsHTTP(t *testing.T) {
	t.Parallel()
	_, _, err := Fetch(context.Background(), "http://example.com/a.png", 0)
	require.ErrorIs(t, err, ErrUnsafeScheme)
}

func TestFetch_RejectsContentType(t *testing.T) {
	srv := withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>"))
	})

	_, _, err := Fetch(context.Background(), srv.URL, 0)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestFetch_BodyTooLarge(t *testing.T) {
	srv := withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(make([]byte, 32))
	})

	_, _, err := Fetch(context.Background(), srv.URL, 16)
	require.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestFetchBlobPart(t *testing.T) {
	srv := withTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-"))
	})

	part, err := FetchBlobPart(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", part.MIMEType)
	assert.Equal(t, []byte("%PDF-"), part.Data)
}
