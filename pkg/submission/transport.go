package submission

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Response is the part of the backend reply a submission looks at.
type Response struct {
	StatusCode int
	OK         bool
}

// Transport delivers an encoded body to the form backend. Implementations make
// a single attempt; retrying is left to the user.
type Transport interface {
	Send(ctx context.Context, body string) (Response, error)
}

// TransportFunc adapts a function into a Transport.
type TransportFunc func(ctx context.Context, body string) (Response, error)

// Send calls the underlying function.
func (fn TransportFunc) Send(ctx context.Context, body string) (Response, error) {
	return fn(ctx, body)
}

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// OKFunc classifies a status code as success.
type OKFunc func(status int) bool

// DefaultOK accepts 2xx and 3xx responses.
func DefaultOK(status int) bool {
	return status >= 200 && status < 400
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*HTTPTransport)

// WithHTTPClient replaces the default http.Client. The transport sets no
// timeout of its own; configure one on the client if needed.
func WithHTTPClient(client Doer) TransportOption {
	return func(t *HTTPTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithOKFunc overrides the success predicate.
func WithOKFunc(fn OKFunc) TransportOption {
	return func(t *HTTPTransport) {
		if fn != nil {
			t.ok = fn
		}
	}
}

// WithHeader adds a static request header, for example a preview token.
func WithHeader(key, value string) TransportOption {
	return func(t *HTTPTransport) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if t.header == nil {
			t.header = make(http.Header)
		}
		t.header.Add(key, value)
	}
}

// HTTPTransport posts submissions to the root of a site.
type HTTPTransport struct {
	endpoint string
	client   Doer
	ok       OKFunc
	header   http.Header
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport targets `/` on the site at baseURL, which must be absolute.
func NewHTTPTransport(baseURL string, options ...TransportOption) (*HTTPTransport, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("submission: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("submission: base url %q must be absolute", baseURL)
	}
	endpoint := base.ResolveReference(&url.URL{Path: "/"})

	t := &HTTPTransport{
		endpoint: endpoint.String(),
		client:   http.DefaultClient,
		ok:       DefaultOK,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t, nil
}

// Endpoint returns the resolved submit URL.
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

// Send implements Transport. The response body is drained and discarded so
// backend detail never reaches callers.
func (t *HTTPTransport) Send(ctx context.Context, body string) (Response, error) {
	if t == nil || t.client == nil {
		return Response{}, errors.New("submission: transport is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("submission: build request: %w", err)
	}
	for key, values := range t.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Content-Type", ContentType)

	resp, err := t.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("submission: post %s: %w", t.endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return Response{
		StatusCode: resp.StatusCode,
		OK:         t.ok(resp.StatusCode),
	}, nil
}
