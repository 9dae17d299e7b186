// Package cli implements posctl, a terminal client that drives the gateway
// the same way the browser screens do.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/poskit/pos-gateway/internal/features/categories"
	"github.com/poskit/pos-gateway/internal/features/kitchen"
	"github.com/poskit/pos-gateway/internal/features/modifiers"
	"github.com/poskit/pos-gateway/internal/features/orders"
	"github.com/poskit/pos-gateway/internal/features/productmodifiers"
	"github.com/poskit/pos-gateway/internal/features/products"
	"github.com/poskit/pos-gateway/internal/features/tables"
	"github.com/poskit/pos-gateway/internal/features/tickets"
	"github.com/poskit/pos-gateway/internal/recent"
	"github.com/poskit/pos-gateway/internal/relay"
)

var (
	// ErrUsage is returned for a malformed command line.
	ErrUsage = errors.New("invalid usage")
	// ErrEmptyResponse is returned when the backend answers 2xx without a body.
	ErrEmptyResponse = errors.New("empty response from backend")
)

// localOwner keys the on-disk recent orders list.
const localOwner = "local"

// SessionStore is the local cookie storage behind the relay.
type SessionStore interface {
	Clear() error
}

// Deps are the collaborators of Cli. Session and Logger are optional.
type Deps struct {
	Relay   *relay.Client
	Session SessionStore
	Recent  recent.Repository
	Prompt  Prompter
	Out     io.Writer
	Logger  *zap.Logger
}

// Cli holds the clients every command needs.
type Cli struct {
	relay      *relay.Client
	session    SessionStore
	categories *categories.Client
	products   *products.Client
	modifiers  *modifiers.Client
	links      *productmodifiers.Client
	tables     *tables.Client
	orders     *orders.Client
	kitchen    *kitchen.Client
	tickets    *tickets.Client
	recent     recent.Repository
	prompt     Prompter
	out        io.Writer
	logger     *zap.Logger
}

// New wires the feature clients on top of the relay.
func New(deps Deps) *Cli {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cli{
		relay:      deps.Relay,
		session:    deps.Session,
		categories: categories.NewClient(deps.Relay),
		products:   products.NewClient(deps.Relay),
		modifiers:  modifiers.NewClient(deps.Relay),
		links:      productmodifiers.NewClient(deps.Relay),
		tables:     tables.NewClient(deps.Relay),
		orders:     orders.NewClient(deps.Relay),
		kitchen:    kitchen.NewClient(deps.Relay),
		tickets:    tickets.NewClient(deps.Relay),
		recent:     deps.Recent,
		prompt:     deps.Prompt,
		out:        deps.Out,
		logger:     logger,
	}
}

// Run dispatches one command.
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	command, rest := args[0], args[1:]
	c.logger.Debug("running command", zap.String("command", command), zap.Strings("args", rest))

	switch command {
	case "login":
		return c.RunLogin(ctx, rest)
	case "logout":
		return c.RunLogout(ctx)
	case "whoami":
		return c.RunWhoami(ctx)
	case "nav":
		return c.RunNav(ctx)
	case "catalog":
		return c.RunCatalog(ctx, rest)
	case "product":
		return c.RunProduct(ctx, rest)
	case "tables":
		return c.RunTables(ctx, rest)
	case "orders":
		return c.RunOrders(ctx, rest)
	case "order":
		return c.RunOrder(ctx, rest)
	case "new":
		return c.RunNewOrder(ctx, rest)
	case "send":
		return c.RunSend(ctx, rest)
	case "ready":
		return c.RunReady(ctx, rest)
	case "kitchen":
		return c.RunKitchen(ctx)
	case "ticket":
		return c.RunTicket(ctx, rest)
	case "pay":
		return c.RunPay(ctx, rest)
	case "recent":
		return c.RunRecent(ctx, rest)
	}
	return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
}

// PrintUsage writes the command summary.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "posctl - POS gateway client")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  posctl [OPTIONS] COMMAND")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --gateway URL   Gateway URL (default: http://localhost:3000)")
	fmt.Fprintln(w, "  --db PATH       Path to local database (default: posctl.db)")
	fmt.Fprintln(w, "  --debug         Verbose logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  login [email]                   Sign in (password is prompted)")
	fmt.Fprintln(w, "  logout                          Sign out")
	fmt.Fprintln(w, "  whoami                          Show the signed in identity")
	fmt.Fprintln(w, "  nav                             Show the screens available to the role")
	fmt.Fprintln(w, "  catalog [query]                 List active categories and products")
	fmt.Fprintln(w, "  product <id>                    Show a product and its modifier groups")
	fmt.Fprintln(w, "  tables [FREE|OCCUPIED]          List tables")
	fmt.Fprintln(w, "  orders [status]                 List orders")
	fmt.Fprintln(w, "  order <id>                      Show an order")
	fmt.Fprintln(w, "  new <DINE_IN|TAKEOUT|DELIVERY>  Create an order")
	fmt.Fprintln(w, "  send <id>                       Send an order to the kitchen")
	fmt.Fprintln(w, "  ready <id>                      Mark an order ready")
	fmt.Fprintln(w, "  kitchen                         Show the kitchen board")
	fmt.Fprintln(w, "  ticket <orderId>                Open the ticket for an order")
	fmt.Fprintln(w, "  pay <ticketId> <method> <amt>   Record a payment")
	fmt.Fprintln(w, "  recent [clear|rm <id>]          Show or edit recent orders")
}

func parseID(args []string, name string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: missing %s", ErrUsage, name)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrUsage, name)
	}
	return id, nil
}

func present[T any](v *T) error {
	if v == nil {
		return ErrEmptyResponse
	}
	return nil
}
