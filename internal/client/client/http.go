package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/google/uuid"
)

// DefaultTimeout bounds a single request when no other timeout is configured.
const DefaultTimeout = 10 * time.Second

// HTTPClient implements Client over HTTP/JSON.
type HTTPClient struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
	log            logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the underlying *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithUnauthorizedHandler sets the callback for 401/403 answers.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *HTTPClient) { c.onUnauthorized = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL,
// e.g. "http://127.0.0.1:5000/api".
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		tokens:  noToken{},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	auth        bool
}

func jsonRequest(method, path string, payload any, auth bool) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode request: %w", err)
	}
	return request{
		method:      method,
		path:        path,
		body:        bytes.NewReader(b),
		contentType: "application/json",
		auth:        auth,
	}, nil
}

// do sends r and returns the body of a 2xx response.
func (c *HTTPClient) do(ctx context.Context, r request) ([]byte, error) {
	var token string
	if r.auth {
		token = c.tokens.Token()
		if token == "" {
			return nil, ErrUnauthorized
		}
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}

	log := c.log.With("method", r.method, "path", r.path, "request_id", requestID)
	log.Debug(ctx, "sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Debug(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	log.Debug(ctx, "response received", "status", resp.StatusCode)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case r.auth && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden):
		log.Warn(ctx, "session rejected by server", "status", resp.StatusCode)
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx, token)
		}
		return nil, ErrUnauthorized
	default:
		return nil, decodeError(resp.StatusCode, body)
	}
}

// decodeInto unmarshals body into v. An empty body leaves v untouched.
func decodeInto(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
