// Package products wraps the backend /products endpoints.
package products

import (
	"context"
	"fmt"
	"net/http"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/relay"
)

const basePath = "/products"

// Filters narrows List. Zero values are not sent.
type Filters struct {
	CategoryID *int64
	IsActive   *bool
	Query      string
}

// CreateInput is the payload of Create.
type CreateInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"categoryId"`
}

// UpdateInput carries the fields to change.
type UpdateInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryID  *int64   `json:"categoryId,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// Client calls the product endpoints.
type Client struct {
	relay *relay.Client
}

// NewClient builds the client.
func NewClient(r *relay.Client) *Client {
	return &Client{relay: r}
}

func (c *Client) List(ctx context.Context, f Filters) ([]domain.Product, error) {
	return relay.List[domain.Product](ctx, c.relay, relay.Request{
		Path: basePath,
		Query: map[string]any{
			"categoryId": f.CategoryID,
			"isActive":   f.IsActive,
			"q":          f.Query,
		},
	})
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return relay.Do[domain.Product](ctx, c.relay, relay.Request{Path: itemPath(id)})
}

func (c *Client) Create(ctx context.Context, input CreateInput) (*domain.Product, error) {
	return relay.Do[domain.Product](ctx, c.relay, relay.Request{Method: http.MethodPost, Path: basePath, Body: input})
}

func (c *Client) Update(ctx context.Context, id int64, input UpdateInput) (*domain.Product, error) {
	return relay.Do[domain.Product](ctx, c.relay, relay.Request{Method: http.MethodPatch, Path: itemPath(id), Body: input})
}

// ToggleActive flips the product's active flag.
func (c *Client) ToggleActive(ctx context.Context, id int64) (*domain.Product, error) {
	return relay.Do[domain.Product](ctx, c.relay, relay.Request{Method: http.MethodPatch, Path: itemPath(id) + "/toggle-active"})
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.relay.Send(ctx, relay.Request{Method: http.MethodDelete, Path: itemPath(id)})
	return err
}

func itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}
