// Package kitchen wraps the backend /kitchen endpoints and groups kitchen
// items into the board columns.
package kitchen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/relay"
)

const basePath = "/kitchen/orders"

// UpdateItemInput is the payload of UpdateItem.
type UpdateItemInput struct {
	Status domain.OrderItemStatus `json:"status"`
}

// Client calls the kitchen endpoints.
type Client struct {
	relay *relay.Client
}

// NewClient builds the client.
func NewClient(r *relay.Client) *Client {
	return &Client{relay: r}
}

// List returns kitchen orders; an empty status lists all.
func (c *Client) List(ctx context.Context, status domain.OrderStatus) ([]domain.KitchenOrder, error) {
	return relay.List[domain.KitchenOrder](ctx, c.relay, relay.Request{
		Path:  basePath,
		Query: map[string]any{"status": string(status)},
	})
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.KitchenOrder, error) {
	return relay.Do[domain.KitchenOrder](ctx, c.relay, relay.Request{Path: fmt.Sprintf("%s/%d", basePath, id)})
}

// UpdateItem moves one item to status after checking the move locally.
func (c *Client) UpdateItem(ctx context.Context, orderID int64, item domain.KitchenItem, status domain.OrderItemStatus) (*domain.KitchenOrder, error) {
	if !CanTransition(item.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.Status, status)
	}
	return relay.Do[domain.KitchenOrder](ctx, c.relay, relay.Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("%s/%d/items/%d", basePath, orderID, item.ID),
		Body:   UpdateItemInput{Status: status},
	})
}
