// Package modifiers wraps the backend modifier group and option endpoints.
package modifiers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/relay"
)

const (
	groupsPath  = "/modifier-groups"
	optionsPath = "/modifier-options"
)

type GroupInput struct {
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	MinSelect int    `json:"minSelect"`
	MaxSelect int    `json:"maxSelect"`
	Multi     bool   `json:"multi"`
}

type GroupUpdate struct {
	Name      *string `json:"name,omitempty"`
	Required  *bool   `json:"required,omitempty"`
	MinSelect *int    `json:"minSelect,omitempty"`
	MaxSelect *int    `json:"maxSelect,omitempty"`
	Multi     *bool   `json:"multi,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

type OptionInput struct {
	GroupID    int64   `json:"groupId"`
	Name       string  `json:"name"`
	PriceDelta float64 `json:"priceDelta"`
}

type OptionUpdate struct {
	Name       *string  `json:"name,omitempty"`
	PriceDelta *float64 `json:"priceDelta,omitempty"`
	IsActive   *bool    `json:"isActive,omitempty"`
}

// Client calls the modifier endpoints.
type Client struct {
	relay *relay.Client
}

// NewClient builds the client.
func NewClient(r *relay.Client) *Client {
	return &Client{relay: r}
}

func (c *Client) ListGroups(ctx context.Context) ([]domain.ModifierGroup, error) {
	return relay.List[domain.ModifierGroup](ctx, c.relay, relay.Request{Path: groupsPath})
}

func (c *Client) GetGroup(ctx context.Context, id int64) (*domain.ModifierGroup, error) {
	return relay.Do[domain.ModifierGroup](ctx, c.relay, relay.Request{Path: path(groupsPath, id)})
}

func (c *Client) CreateGroup(ctx context.Context, input GroupInput) (*domain.ModifierGroup, error) {
	return relay.Do[domain.ModifierGroup](ctx, c.relay, relay.Request{Method: http.MethodPost, Path: groupsPath, Body: input})
}

func (c *Client) UpdateGroup(ctx context.Context, id int64, input GroupUpdate) (*domain.ModifierGroup, error) {
	return relay.Do[domain.ModifierGroup](ctx, c.relay, relay.Request{Method: http.MethodPatch, Path: path(groupsPath, id), Body: input})
}

func (c *Client) ToggleGroupActive(ctx context.Context, id int64) (*domain.ModifierGroup, error) {
	return relay.Do[domain.ModifierGroup](ctx, c.relay, relay.Request{Method: http.MethodPatch, Path: path(groupsPath, id) + "/toggle-active"})
}

func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	_, err := c.relay.Send(ctx, relay.Request{Method: http.MethodDelete, Path: path(groupsPath, id)})
	return err
}

func (c *Client) CreateOption(ctx context.Context, input OptionInput) (*domain.ModifierOption, error) {
	return relay.Do[domain.ModifierOption](ctx, c.relay, relay.Request{Method: http.MethodPost, Path: optionsPath, Body: input})
}

func (c *Client) UpdateOption(ctx context.Context, id int64, input OptionUpdate) (*domain.ModifierOption, error) {
	return relay.Do[domain.ModifierOption](ctx, c.relay, relay.Request{Method: http.MethodPatch, Path: path(optionsPath, id), Body: input})
}

func (c *Client) ToggleOptionActive(ctx context.Context, id int64) (*domain.ModifierOption, error) {
	return relay.Do[domain.ModifierOption](ctx, c.relay, relay.Request{Method: http.MethodPatch, Path: path(optionsPath, id) + "/toggle-active"})
}

func (c *Client) DeleteOption(ctx context.Context, id int64) error {
	_, err := c.relay.Send(ctx, relay.Request{Method: http.MethodDelete, Path: path(optionsPath, id)})
	return err
}

func path(base string, id int64) string {
	return fmt.Sprintf("%s/%d", base, id)
}
