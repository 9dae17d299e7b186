// Package tables wraps the backend /tables endpoints.
package tables

import (
	"context"
	"fmt"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/relay"
)

// Client calls the table endpoints.
type Client struct {
	relay *relay.Client
}

// NewClient builds the client.
func NewClient(r *relay.Client) *Client {
	return &Client{relay: r}
}

// List returns tables; an empty status lists all.
func (c *Client) List(ctx context.Context, status domain.TableStatus) ([]domain.Table, error) {
	return relay.List[domain.Table](ctx, c.relay, relay.Request{
		Path:  "/tables",
		Query: map[string]any{"status": string(status)},
	})
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Table, error) {
	return relay.Do[domain.Table](ctx, c.relay, relay.Request{Path: fmt.Sprintf("/tables/%d", id)})
}
