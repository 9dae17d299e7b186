package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/poskit/pos-gateway/internal/config"
	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/pkg/util/apierror"
)

// ErrNotConfigured is returned by every call when NEST_API_URL is unset.
var ErrNotConfigured = errors.New("backend address not configured")

// Credentials is the login payload forwarded to the backend.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response is a raw backend reply relayed to the browser.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// ForwardRequest describes a relayed call to {base}/api/{Path}.
type ForwardRequest struct {
	Method      string
	Path        string
	RawQuery    string
	Body        []byte
	AccessToken string
}

// UpstreamError is a non-2xx answer from an auth endpoint.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// TransportError means the backend could not be reached or read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "backend request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client talks to the business API behind the gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates the backend client.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Configured reports whether a backend address is available.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (*domain.TokenPair, error) {
	return c.tokenCall(ctx, "/api/auth/login", creds)
}

// Refresh rotates a refresh token into a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	return c.tokenCall(ctx, "/api/auth/refresh", map[string]string{"refreshToken": refreshToken})
}

// Logout invalidates the session the access token belongs to.
func (c *Client) Logout(ctx context.Context, accessToken string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/logout", "", nil, accessToken)
	if err != nil {
		return err
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return &UpstreamError{Status: resp.Status, Message: apierror.MessageOr(resp.Body, "")}
	}
	return nil
}

// Me returns the backend's view of the current identity, unmodified.
func (c *Client) Me(ctx context.Context, accessToken string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/api/auth/me", "", nil, accessToken)
}

// Forward relays an arbitrary API call with the caller's bearer token.
func (c *Client) Forward(ctx context.Context, req ForwardRequest) (*Response, error) {
	path := "/api/" + strings.TrimLeft(req.Path, "/")
	var body []byte
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		body = req.Body
		if body == nil {
			body = []byte{}
		}
	}
	return c.do(ctx, req.Method, path, req.RawQuery, body, req.AccessToken)
}

func (c *Client) tokenCall(ctx context.Context, path string, payload any) (*domain.TokenPair, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, path, "", data, "")
	if err != nil {
		return nil, err
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return nil, &UpstreamError{Status: resp.Status, Message: apierror.MessageOr(resp.Body, "")}
	}

	// an undecodable success body is treated as a pair without tokens
	var pair domain.TokenPair
	_ = json.Unmarshal(resp.Body, &pair)
	return &pair, nil
}

// do sends a request; a nil body means no body and no content type.
func (c *Client) do(ctx context.Context, method, path, rawQuery string, body []byte, bearer string) (*Response, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	url := c.baseURL + path
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
