// Package tickets wraps the backend ticket and payment endpoints.
package tickets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/relay"
)

var (
	ErrInvalidMethod = errors.New("tickets: unknown payment method")
	ErrInvalidAmount = errors.New("tickets: payment amount must be positive")
)

// PaymentInput is the payload of Pay.
type PaymentInput struct {
	TicketID int64                `json:"ticketId"`
	Method   domain.PaymentMethod `json:"method"`
	Amount   float64              `json:"amount"`
}

// Validate checks the payment before it is sent.
func (p PaymentInput) Validate() error {
	if !p.Method.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, p.Method)
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Client calls the ticket endpoints.
type Client struct {
	relay *relay.Client
}

// NewClient builds the client.
func NewClient(r *relay.Client) *Client {
	return &Client{relay: r}
}

// CreateFromOrder opens the ticket that bills an order.
func (c *Client) CreateFromOrder(ctx context.Context, orderID int64) (*domain.Ticket, error) {
	return c.call(ctx, http.MethodPost, fmt.Sprintf("/tickets/from-order/%d", orderID))
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Ticket, error) {
	return c.call(ctx, http.MethodGet, ticketPath(id))
}

func (c *Client) Cancel(ctx context.Context, id int64) (*domain.Ticket, error) {
	return c.call(ctx, http.MethodPatch, ticketPath(id)+"/cancel")
}

func (c *Client) Close(ctx context.Context, id int64) (*domain.Ticket, error) {
	return c.call(ctx, http.MethodPost, ticketPath(id)+"/close")
}

// Pay records a payment against a ticket.
func (c *Client) Pay(ctx context.Context, input PaymentInput) (*domain.TicketPayment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return relay.Do[domain.TicketPayment](ctx, c.relay, relay.Request{Method: http.MethodPost, Path: "/payments", Body: input})
}

// CanSettle reports whether payments, cancel and close are offered.
func CanSettle(t *domain.Ticket) bool {
	return t != nil && t.Status == domain.TicketOpen
}

func (c *Client) call(ctx context.Context, method, path string) (*domain.Ticket, error) {
	return relay.Do[domain.Ticket](ctx, c.relay, relay.Request{Method: method, Path: path})
}

func ticketPath(id int64) string {
	return fmt.Sprintf("/tickets/%d", id)
}
