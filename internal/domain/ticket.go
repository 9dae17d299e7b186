package domain

// TicketStatus mirrors backend ticket settlement.
type TicketStatus string

const (
	TicketOpen     TicketStatus = "OPEN"
	TicketPaid     TicketStatus = "PAID"
	TicketCanceled TicketStatus = "CANCELED"
)

// PaymentMethod enumerates accepted tenders.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// Valid reports whether m is an accepted tender.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// TicketPayment is a payment applied to a ticket.
type TicketPayment struct {
	ID        int64         `json:"id"`
	TicketID  int64         `json:"ticketId"`
	Method    PaymentMethod `json:"method"`
	Amount    float64       `json:"amount"`
	Change    *float64      `json:"change,omitempty"`
	CreatedAt string        `json:"createdAt,omitempty"`
}

// Ticket is the billing record derived from an order.
type Ticket struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	Status    TicketStatus    `json:"status"`
	Subtotal  *float64        `json:"subtotal,omitempty"`
	Total     *float64        `json:"total,omitempty"`
	Paid      *float64        `json:"paid,omitempty"`
	Due       *float64        `json:"due,omitempty"`
	Change    *float64        `json:"change,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
	Payments  []TicketPayment `json:"payments,omitempty"`
}
