// Package productmodifiers links products to modifier groups.
package productmodifiers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/relay"
)

// AttachInput is the payload of Attach.
type AttachInput struct {
	GroupID   int64 `json:"groupId"`
	SortOrder int   `json:"sortOrder"`
}

// DetachResult is the backend acknowledgement of Detach.
type DetachResult struct {
	OK bool `json:"ok"`
}

// Client calls /products/{id}/modifier-groups.
type Client struct {
	relay *relay.Client
}

// NewClient builds the client.
func NewClient(r *relay.Client) *Client {
	return &Client{relay: r}
}

func (c *Client) List(ctx context.Context, productID int64) ([]domain.ProductModifierGroup, error) {
	return relay.List[domain.ProductModifierGroup](ctx, c.relay, relay.Request{Path: basePath(productID)})
}

func (c *Client) Attach(ctx context.Context, productID int64, input AttachInput) (*domain.ProductModifierGroup, error) {
	return relay.Do[domain.ProductModifierGroup](ctx, c.relay, relay.Request{
		Method: http.MethodPost,
		Path:   basePath(productID),
		Body:   input,
	})
}

// Detach removes the link; an empty answer counts as success.
func (c *Client) Detach(ctx context.Context, productID, groupID int64) (bool, error) {
	res, err := relay.Do[DetachResult](ctx, c.relay, relay.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("%s/%d", basePath(productID), groupID),
	})
	if err != nil {
		return false, err
	}
	return res == nil || res.OK, nil
}

func basePath(productID int64) string {
	return fmt.Sprintf("/products/%d/modifier-groups", productID)
}
