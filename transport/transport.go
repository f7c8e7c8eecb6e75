package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/skosovsky/googlegen"
)

// Fragment is one streamed response payload. Exactly one of Data and Err
// is set; an Err fragment is terminal.
type Fragment struct {
	Data json.RawMessage
	Err  error
}

// Submitter is the submit collaborator consumed by callers of the adapter
// layer: a blocking submit and a streaming submit over a serialized
// request body.
type Submitter interface {
	Submit(ctx context.Context, body []byte) (json.RawMessage, error)
	SubmitStream(ctx context.Context, body []byte) (<-chan Fragment, error)
}

// Client submits requests to one model on one backend. Safe for concurrent
// use; every call operates on its own request and response.
type Client struct {
	conn   googlegen.ConnectionConfig
	model  string
	family googlegen.Family
	hc     *http.Client
	tokens TokenSource
}

// Compile-time check.
var _ Submitter = (*Client)(nil)

// NewClient returns a Client for the model and family named by params.
// The connection must validate and params.Model must be set.
func NewClient(conn googlegen.ConnectionConfig, params googlegen.ModelParams, opts ...Option) (*Client, error) {
	if err := conn.Validate(); err != nil {
		return nil, err
	}
	if params.Model == "" {
		return nil, ErrMissingModel
	}
	c := &Client{
		conn:   conn,
		model:  params.Model,
		family: params.Family,
		hc:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokens == nil && conn.Platform == googlegen.PlatformVertexAI {
		c.tokens = StaticTokenSource(conn.Credentials)
	}
	return c, nil
}

// Submit posts the serialized request and returns the raw response body.
// Non-2xx replies surface as *BackendError, uninterpreted.
func (c *Client) Submit(ctx context.Context, body []byte) (json.RawMessage, error) {
	resp, err := c.do(ctx, body, false)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: read response: %w", err)
	}
	return raw, nil
}

// SubmitStream posts the serialized request to the streaming endpoint and
// returns a channel of fragments. The channel closes when the stream ends;
// a read or protocol failure arrives as a terminal Err fragment. Cancel ctx
// to abandon the stream.
func (c *Client) SubmitStream(ctx context.Context, body []byte) (<-chan Fragment, error) {
	resp, err := c.do(ctx, body, true)
	if err != nil {
		return nil, err
	}
	ch := make(chan Fragment, 16)
	go func() {
		defer close(ch)
		defer func() { _ = resp.Body.Close() }()
		err := readSSE(resp.Body, func(data []byte) error {
			select {
			case ch <- Fragment{Data: data}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			select {
			case ch <- Fragment{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return ch, nil
}

func (c *Client) do(ctx context.Context, body []byte, stream bool) (*http.Response, error) {
	endpoint, err := c.conn.ResolveEndpoint(c.model, c.family, stream)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("transport: parse endpoint: %w", err)
	}
	q := u.Query()
	if stream {
		q.Set("alt", "sse")
	}
	if c.conn.Platform == googlegen.PlatformGenerativeLanguage {
		q.Set("key", c.conn.APIKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("transport: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}
	if c.conn.Platform == googlegen.PlatformVertexAI {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("transport: token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: do request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, &BackendError{StatusCode: resp.StatusCode, Body: raw}
	}
	return resp, nil
}

// CollectStream folds fragments into a normalized response. On a fragment
// error, a malformed fragment, or ctx cancellation it returns the error and
// never a partial response.
func CollectStream(ctx context.Context, family googlegen.Family, fragments <-chan Fragment) (*googlegen.Response, error) {
	s := googlegen.NewStream(family)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case f, ok := <-fragments:
			if !ok {
				return s.Response(), nil
			}
			if f.Err != nil {
				return nil, f.Err
			}
			if err := s.Push(f.Data); err != nil {
				return nil, err
			}
		}
	}
}
