package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Identity is the backend's answer to /api/auth/me.
type Identity struct {
	UserID json.RawMessage `json:"userId"`
	Email  string          `json:"email"`
	Role   string          `json:"role"`
}

// Subject renders the user id whether the backend sent a number or a string.
func (i *Identity) Subject() string {
	var s string
	if json.Unmarshal(i.UserID, &s) == nil {
		return s
	}
	return string(i.UserID)
}

// NavItem mirrors one entry of /api/nav.
type NavItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon"`
}

// NavSection mirrors one section of /api/nav.
type NavSection struct {
	Title string    `json:"title"`
	Items []NavItem `json:"items"`
}

// Nav is the navigation the gateway computed for the session's role.
type Nav struct {
	Role     string       `json:"role"`
	Email    string       `json:"email"`
	Home     string       `json:"home"`
	Sections []NavSection `json:"sections"`
}

// Login signs in; the gateway answers with the session cookies.
func (c *Client) Login(ctx context.Context, email, password string) error {
	resp, err := c.doRaw(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	if err != nil {
		return err
	}
	_, err = resp.parse()
	return err
}

// Logout ends the session. The gateway clears the cookies even if the backend is unreachable.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRaw(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	_, err = resp.parse()
	return err
}

// Me returns the backend identity, refreshing the session once on 401.
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var out Identity
	if err := c.gatewayJSON(ctx, "/api/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Nav returns the navigation of the session's role.
func (c *Client) Nav(ctx context.Context) (*Nav, error) {
	var out Nav
	if err := c.gatewayJSON(ctx, "/api/nav", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// gatewayJSON GETs a gateway route outside the proxy with the same
// refresh-and-retry rule as Send.
func (c *Client) gatewayJSON(ctx context.Context, path string, out any) error {
	body, err := c.getOnce(ctx, path)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		if c.Refresh(ctx) == nil {
			body, err = c.getOnce(ctx, path)
		}
	}
	if err != nil {
		return err
	}
	if body == nil {
		return fmt.Errorf("empty response from %s", path)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) getOnce(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.doRaw(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.parse()
}
