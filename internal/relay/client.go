// Package relay is the typed request helper used by feature clients. Calls go
// through the gateway's /api/proxy route with the session cookies and are
// retried once after a silent refresh when the backend answers 401.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/poskit/pos-gateway/pkg/util/apierror"
)

const (
	proxyPrefix  = "/api/proxy"
	refreshPath  = "/api/auth/refresh"
	refreshKey   = "refresh"
	jsonMIMEType = "application/json"
)

// ErrRefreshFailed is returned by Refresh when the gateway refuses to rotate the session.
var ErrRefreshFailed = errors.New("session refresh failed")

// APIError is a non-2xx answer, or a 2xx answer that is not JSON.
type APIError struct {
	Status  int
	Message string
	Details json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Request describes one call to {origin}/api/proxy{Path}. Query values that
// are nil, nil pointers or empty strings are skipped. NoRetry disables the
// refresh-and-retry on 401.
type Request struct {
	Method  string
	Path    string
	Query   map[string]any
	Body    any
	Header  map[string]string
	NoRetry bool
}

// Client sends relay requests on behalf of one browser-like session.
type Client struct {
	origin     string
	httpClient *http.Client
	logger     *zap.Logger
	refreshes  singleflight.Group
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its jar carries the session.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithJar sets the cookie jar holding the session cookies.
func WithJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.httpClient.Jar = jar
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the gateway at origin (scheme://host[:port]).
func NewClient(origin string, opts ...Option) (*Client, error) {
	origin = strings.TrimRight(origin, "/")
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid gateway origin %q", origin)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		origin:     origin,
		httpClient: &http.Client{Timeout: 30 * time.Second, Jar: jar},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Origin returns the gateway origin.
func (c *Client) Origin() string {
	return c.origin
}

// HTTPClient exposes the underlying client for session routes.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Do sends req and decodes a JSON answer into T. An empty 2xx body yields nil.
func Do[T any](ctx context.Context, c *Client, req Request) (*T, error) {
	body, err := c.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// Send performs req and returns the raw JSON body of a 2xx answer, or nil
// when it is empty. A 401 triggers at most one refresh and one retry; when
// the refresh fails the original 401 is reported.
func (c *Client) Send(ctx context.Context, req Request) ([]byte, error) {
	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusUnauthorized && !req.NoRetry {
		if err := c.Refresh(ctx); err == nil {
			retry := req
			retry.NoRetry = true
			return c.Send(ctx, retry)
		}
		c.logger.Debug("refresh failed, keeping original 401", zap.String("path", req.Path))
	}

	return resp.parse()
}

// Refresh asks the gateway to rotate the session cookies. Concurrent callers
// share one in-flight refresh.
func (c *Client) Refresh(ctx context.Context) error {
	ch := c.refreshes.DoChan(refreshKey, func() (interface{}, error) {
		return nil, c.refresh(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) refresh(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.origin+refreshPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ErrRefreshFailed
	}
	return nil
}

type response struct {
	status      int
	contentType string
	body        []byte
}

func (c *Client) roundTrip(ctx context.Context, req Request) (*response, error) {
	return c.doRaw(ctx, req.Method, BuildPath(req.Path, req.Query), req.Body, req.Header)
}

// doRaw sends one request to a gateway path, without any retry.
func (c *Client) doRaw(ctx context.Context, method, path string, body any, header map[string]string) (*response, error) {
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.origin+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", jsonMIMEType)
	if body != nil {
		httpReq.Header.Set("Content-Type", jsonMIMEType)
	}
	for k, v := range header {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &response{status: resp.StatusCode, contentType: resp.Header.Get("Content-Type"), body: respBody}, nil
}

func (r *response) parse() ([]byte, error) {
	isJSON := strings.Contains(r.contentType, jsonMIMEType)

	if r.status < 200 || r.status >= 300 {
		apiErr := &APIError{Status: r.status, Message: apierror.StatusFallback(r.status)}
		if isJSON && len(r.body) > 0 && json.Valid(r.body) {
			apiErr.Details = json.RawMessage(r.body)
			if msg, ok := apierror.Message(r.body); ok {
				apiErr.Message = msg
			}
		}
		return nil, apiErr
	}

	if len(r.body) == 0 {
		return nil, nil
	}
	if !isJSON {
		contentType := r.contentType
		if contentType == "" {
			contentType = "sin content-type"
		}
		return nil, &APIError{Status: r.status, Message: fmt.Sprintf("Respuesta no esperada (%s)", contentType)}
	}
	return r.body, nil
}

// BuildPath returns /api/proxy{path}?{query} with the leading slash normalized.
func BuildPath(path string, query map[string]any) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	values := url.Values{}
	for key, raw := range query {
		if v, ok := queryValue(raw); ok {
			values.Set(key, v)
		}
	}

	if encoded := values.Encode(); encoded != "" {
		return proxyPrefix + path + "?" + encoded
	}
	return proxyPrefix + path
}

func queryValue(raw any) (string, bool) {
	if raw == nil {
		return "", false
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		raw = rv.Elem().Interface()
	}
	s := fmt.Sprint(raw)
	if s == "" {
		return "", false
	}
	return s, true
}

// List is Do for collection endpoints: an empty body yields an empty slice.
func List[T any](ctx context.Context, c *Client, req Request) ([]T, error) {
	out, err := Do[[]T](ctx, c, req)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []T{}, nil
	}
	return *out, nil
}
