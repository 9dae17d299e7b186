package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/features/kitchen"
	"github.com/poskit/pos-gateway/internal/features/orders"
	"github.com/poskit/pos-gateway/internal/features/tickets"
)

func (c *Cli) RunLogin(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		input, err := c.prompt.ReadInput("Email: ")
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
		email = input
	}
	if email == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrUsage)
	}

	password, err := c.prompt.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := c.relay.Login(ctx, email, password); err != nil {
		return err
	}
	nav, err := c.relay.Nav(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "Signed in as %s\n", email)
		return nil
	}
	fmt.Fprintf(c.out, "Signed in as %s (%s), home %s\n", nav.Email, nav.Role, nav.Home)
	return nil
}

// RunLogout signs out; the local session is dropped even if the gateway fails.
func (c *Cli) RunLogout(ctx context.Context) error {
	if err := c.relay.Logout(ctx); err != nil {
		c.logger.Warn("logout request failed", zap.Error(err))
	}
	if c.session != nil {
		if err := c.session.Clear(); err != nil {
			return fmt.Errorf("failed to clear local session: %w", err)
		}
	}
	fmt.Fprintln(c.out, "Signed out")
	return nil
}

func (c *Cli) RunWhoami(ctx context.Context) error {
	me, err := c.relay.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s  %s  id=%s\n", me.Email, me.Role, me.Subject())
	return nil
}

func (c *Cli) RunNav(ctx context.Context) error {
	nav, err := c.relay.Nav(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s (%s)\n", nav.Email, nav.Role)
	for _, section := range nav.Sections {
		fmt.Fprintf(c.out, "%s\n", section.Title)
		for _, item := range section.Items {
			fmt.Fprintf(c.out, "  %-12s %s\n", item.Label, item.Href)
		}
	}
	return nil
}

func (c *Cli) RunOrders(ctx context.Context, args []string) error {
	var f orders.Filters
	if len(args) > 0 {
		f.Status = domain.OrderStatus(strings.ToUpper(args[0]))
	}
	list, err := c.orders.List(ctx, f)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(c.out, "No orders")
		return nil
	}
	for i := range list {
		c.printOrderLine(&list[i])
	}
	return nil
}

// RunOrder shows one order and records it as recently viewed.
func (c *Cli) RunOrder(ctx context.Context, args []string) error {
	id, err := parseID(args, "order id")
	if err != nil {
		return err
	}
	order, err := c.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := present(order); err != nil {
		return err
	}
	c.remember(ctx, order.ID)

	c.printOrderLine(order)
	for _, item := range order.Items {
		name := strconv.FormatInt(item.ProductID, 10)
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(c.out, "  #%d %dx %s %s\n", item.ID, item.Qty, name, item.Status)
	}
	var actions []string
	if orders.CanSendToKitchen(order) {
		actions = append(actions, "send")
	}
	if orders.CanMarkReady(order) {
		actions = append(actions, "ready")
	}
	if orders.CanBill(order) {
		actions = append(actions, "ticket")
	}
	if len(actions) > 0 {
		fmt.Fprintf(c.out, "Actions: %s\n", strings.Join(actions, ", "))
	}
	return nil
}

func (c *Cli) RunNewOrder(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing order type", ErrUsage)
	}
	input := orders.CreateInput{Type: domain.OrderType(strings.ToUpper(args[0]))}
	if len(args) > 1 {
		input.Notes = strings.Join(args[1:], " ")
	}
	order, err := c.orders.Create(ctx, input)
	if err != nil {
		return err
	}
	if err := present(order); err != nil {
		return err
	}
	c.remember(ctx, order.ID)
	c.printOrderLine(order)
	return nil
}

func (c *Cli) RunSend(ctx context.Context, args []string) error {
	id, err := parseID(args, "order id")
	if err != nil {
		return err
	}
	order, err := c.orders.SendToKitchen(ctx, id)
	if err != nil {
		return err
	}
	if err := present(order); err != nil {
		return err
	}
	c.printOrderLine(order)
	return nil
}

func (c *Cli) RunReady(ctx context.Context, args []string) error {
	id, err := parseID(args, "order id")
	if err != nil {
		return err
	}
	order, err := c.orders.MarkReady(ctx, id)
	if err != nil {
		return err
	}
	if err := present(order); err != nil {
		return err
	}
	c.printOrderLine(order)
	return nil
}

func (c *Cli) RunKitchen(ctx context.Context) error {
	list, err := c.kitchen.List(ctx, "")
	if err != nil {
		return err
	}
	board := kitchen.BuildBoard(list)
	for _, col := range kitchen.Columns {
		items := board[col]
		fmt.Fprintf(c.out, "%s (%d)\n", col, len(items))
		for _, item := range items {
			name := strconv.FormatInt(item.ProductID, 10)
			if item.Product != nil {
				name = item.Product.Name
			}
			fmt.Fprintf(c.out, "  order %d item %d %dx %s [%s]\n", item.OrderID, item.ID, item.Qty, name, item.OrderType)
		}
	}
	return nil
}

func (c *Cli) RunTicket(ctx context.Context, args []string) error {
	orderID, err := parseID(args, "order id")
	if err != nil {
		return err
	}
	ticket, err := c.tickets.CreateFromOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if err := present(ticket); err != nil {
		return err
	}
	c.printTicket(ticket)
	return nil
}

func (c *Cli) RunPay(ctx context.Context, args []string) error {
	ticketID, err := parseID(args, "ticket id")
	if err != nil {
		return err
	}
	if len(args) < 3 {
		return fmt.Errorf("%w: pay <ticketId> <method> <amount>", ErrUsage)
	}
	amount, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("%w: amount must be a number", ErrUsage)
	}
	payment, err := c.tickets.Pay(ctx, tickets.PaymentInput{
		TicketID: ticketID,
		Method:   domain.PaymentMethod(strings.ToUpper(args[1])),
		Amount:   amount,
	})
	if err != nil {
		return err
	}
	if err := present(payment); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Payment %d: %s %.2f", payment.ID, payment.Method, payment.Amount)
	if payment.Change != nil && *payment.Change > 0 {
		fmt.Fprintf(c.out, " change %.2f", *payment.Change)
	}
	fmt.Fprintln(c.out)
	return nil
}

func (c *Cli) RunRecent(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "clear":
			if err := c.recent.Clear(ctx, localOwner); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Recent orders cleared")
			return nil
		case "rm":
			id, err := parseID(args[1:], "order id")
			if err != nil {
				return err
			}
			if _, err := c.recent.Remove(ctx, localOwner, id); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: recent [clear|rm <id>]", ErrUsage)
		}
	}

	ids, err := c.recent.List(ctx, localOwner)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(c.out, "No recent orders")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintf(c.out, "%d\n", id)
	}
	return nil
}

func (c *Cli) remember(ctx context.Context, id int64) {
	if _, err := c.recent.Add(ctx, localOwner, id); err != nil {
		c.logger.Warn("failed to record recent order", zap.Int64("order_id", id), zap.Error(err))
	}
}

func (c *Cli) printOrderLine(o *domain.Order) {
	line := fmt.Sprintf("#%d %s %s", o.ID, o.Type, o.Status)
	if o.TableID != nil {
		line += fmt.Sprintf(" table %d", *o.TableID)
	}
	if o.Total != nil {
		line += fmt.Sprintf(" total %.2f", *o.Total)
	}
	fmt.Fprintln(c.out, line)
}

func (c *Cli) printTicket(t *domain.Ticket) {
	line := fmt.Sprintf("Ticket %d for order %d %s", t.ID, t.OrderID, t.Status)
	if t.Total != nil {
		line += fmt.Sprintf(" total %.2f", *t.Total)
	}
	if t.Due != nil {
		line += fmt.Sprintf(" due %.2f", *t.Due)
	}
	fmt.Fprintln(c.out, line)
	for _, p := range t.Payments {
		fmt.Fprintf(c.out, "  payment %d %s %.2f\n", p.ID, p.Method, p.Amount)
	}
}
