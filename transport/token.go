package transport

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultTokenTTL = 5 * time.Minute

// TokenSource yields a bearer token for the Vertex AI platform.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticTokenSource returns a TokenSource that always yields token.
func StaticTokenSource(token string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) {
		return token, nil
	})
}

// detachCancel returns a context that is not cancelled when parent is
// cancelled, but still respects parent's deadline so a shared token refresh
// does not hang. The caller should call the returned cancel when done.
func detachCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if dl, ok := parent.Deadline(); ok {
		return context.WithDeadline(ctx, dl)
	}
	return context.WithCancel(ctx) // no-op cancel when no deadline, but same signature
}

// CachingTokenSource wraps a TokenSource with a TTL cache. Concurrent
// refreshes collapse into a single upstream fetch; the refresh runs on a
// detached context so one caller's cancellation does not fail the others.
type CachingTokenSource struct {
	src TokenSource
	ttl time.Duration

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	sf        singleflight.Group
}

// NewCachingTokenSource wraps src with a cache. ttl <= 0 uses the default
// (5 minutes). Panics if src is nil.
func NewCachingTokenSource(src TokenSource, ttl time.Duration) *CachingTokenSource {
	if src == nil {
		panic("transport: TokenSource must not be nil")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &CachingTokenSource{src: src, ttl: ttl}
}

// Token implements TokenSource.
func (c *CachingTokenSource) Token(ctx context.Context) (string, error) {
	now := time.Now()

	c.mu.RLock()
	token, expiresAt := c.token, c.expiresAt
	c.mu.RUnlock()
	if token != "" && now.Before(expiresAt) {
		return token, nil
	}

	v, err, _ := c.sf.Do("token", func() (any, error) {
		// Re-check under the flight: another caller may have refreshed.
		c.mu.RLock()
		token, expiresAt := c.token, c.expiresAt
		c.mu.RUnlock()
		if token != "" && time.Now().Before(expiresAt) {
			return token, nil
		}

		fetchCtx, cancel := detachCancel(ctx)
		defer cancel()
		fresh, err := c.src.Token(fetchCtx)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.token = fresh
		c.expiresAt = time.Now().Add(c.ttl)
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
