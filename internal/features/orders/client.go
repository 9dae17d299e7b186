// Package orders wraps the backend /orders endpoints and the client-side
// rules that decide which order actions are offered.
package orders

import (
	"context"
	"fmt"
	"net/http"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/relay"
)

const basePath = "/orders"

// Filters narrows List. Zero values are not sent.
type Filters struct {
	Status      domain.OrderStatus
	Type        domain.OrderType
	TableID     *int64
	CreatedByID *int64
}

// CreateInput is the payload of Create.
type CreateInput struct {
	Type  domain.OrderType `json:"type"`
	Notes string           `json:"notes,omitempty"`
}

// AddItemInput is the payload of AddItem.
type AddItemInput struct {
	ProductID int64  `json:"productId"`
	Qty       int    `json:"qty"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateItemInput carries the item fields to change.
type UpdateItemInput struct {
	Qty   *int    `json:"qty,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// Client calls the order endpoints.
type Client struct {
	relay *relay.Client
}

// NewClient builds the client.
func NewClient(r *relay.Client) *Client {
	return &Client{relay: r}
}

func (c *Client) List(ctx context.Context, f Filters) ([]domain.Order, error) {
	return relay.List[domain.Order](ctx, c.relay, relay.Request{
		Path: basePath,
		Query: map[string]any{
			"status":      string(f.Status),
			"type":        string(f.Type),
			"tableId":     f.TableID,
			"createdById": f.CreatedByID,
		},
	})
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return c.call(ctx, http.MethodGet, orderPath(id), nil)
}

func (c *Client) Create(ctx context.Context, input CreateInput) (*domain.Order, error) {
	return c.call(ctx, http.MethodPost, basePath, input)
}

func (c *Client) SendToKitchen(ctx context.Context, id int64) (*domain.Order, error) {
	return c.call(ctx, http.MethodPost, orderPath(id)+"/send-to-kitchen", nil)
}

func (c *Client) MarkReady(ctx context.Context, id int64) (*domain.Order, error) {
	return c.call(ctx, http.MethodPost, orderPath(id)+"/mark-ready", nil)
}

func (c *Client) AttachTable(ctx context.Context, orderID, tableID int64) (*domain.Order, error) {
	return c.call(ctx, http.MethodPatch, fmt.Sprintf("%s/attach-table/%d", orderPath(orderID), tableID), nil)
}

func (c *Client) ReleaseTable(ctx context.Context, orderID int64) (*domain.Order, error) {
	return c.call(ctx, http.MethodPatch, orderPath(orderID)+"/release-table", nil)
}

func (c *Client) AddItem(ctx context.Context, orderID int64, input AddItemInput) (*domain.Order, error) {
	return c.call(ctx, http.MethodPost, orderPath(orderID)+"/items", input)
}

func (c *Client) UpdateItem(ctx context.Context, orderID, itemID int64, input UpdateItemInput) (*domain.Order, error) {
	return c.call(ctx, http.MethodPatch, itemPath(orderID, itemID), input)
}

func (c *Client) RemoveItem(ctx context.Context, orderID, itemID int64) (*domain.Order, error) {
	return c.call(ctx, http.MethodDelete, itemPath(orderID, itemID), nil)
}

func (c *Client) call(ctx context.Context, method, path string, body any) (*domain.Order, error) {
	return relay.Do[domain.Order](ctx, c.relay, relay.Request{Method: method, Path: path, Body: body})
}

func orderPath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

func itemPath(orderID, itemID int64) string {
	return fmt.Sprintf("%s/items/%d", orderPath(orderID), itemID)
}
