// Package categories wraps the backend /categories endpoints.
package categories

import (
	"context"
	"net/http"
	"strconv"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/relay"
)

const basePath = "/categories"

// CreateInput is the payload of Create.
type CreateInput struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// UpdateInput carries the fields to change; nil fields are left untouched.
type UpdateInput struct {
	Name      *string `json:"name,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// Client calls the category endpoints.
type Client struct {
	relay *relay.Client
}

// NewClient builds the client.
func NewClient(r *relay.Client) *Client {
	return &Client{relay: r}
}

// List returns categories, optionally filtered by active flag.
func (c *Client) List(ctx context.Context, isActive *bool) ([]domain.Category, error) {
	return relay.List[domain.Category](ctx, c.relay, relay.Request{
		Path:  basePath,
		Query: map[string]any{"isActive": isActive},
	})
}

func (c *Client) Create(ctx context.Context, input CreateInput) (*domain.Category, error) {
	return relay.Do[domain.Category](ctx, c.relay, relay.Request{Method: http.MethodPost, Path: basePath, Body: input})
}

func (c *Client) Update(ctx context.Context, id int64, input UpdateInput) (*domain.Category, error) {
	return relay.Do[domain.Category](ctx, c.relay, relay.Request{
		Method: http.MethodPatch,
		Path:   basePath + "/" + strconv.FormatInt(id, 10),
		Body:   input,
	})
}
