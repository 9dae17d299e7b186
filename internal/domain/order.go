package domain

// OrderType describes how an order is served.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINE_IN"
	OrderTypeTakeout  OrderType = "TAKEOUT"
	OrderTypeDelivery OrderType = "DELIVERY"
)

// OrderStatus mirrors the backend order lifecycle.
type OrderStatus string

const (
	OrderStatusOpen          OrderStatus = "OPEN"
	OrderStatusSentToKitchen OrderStatus = "SENT_TO_KITCHEN"
	OrderStatusReady         OrderStatus = "READY"
	OrderStatusClosed        OrderStatus = "CLOSED"
	OrderStatusCanceled      OrderStatus = "CANCELED"
)

// OrderItemStatus mirrors kitchen progress of a single line.
type OrderItemStatus string

const (
	OrderItemPending    OrderItemStatus = "PENDING"
	OrderItemInProgress OrderItemStatus = "IN_PROGRESS"
	OrderItemReady      OrderItemStatus = "READY"
	OrderItemCanceled   OrderItemStatus = "CANCELED"
)

// OrderItem is one product line on an order.
type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Qty       int             `json:"qty"`
	UnitPrice *float64        `json:"unitPrice,omitempty"`
	Subtotal  *float64        `json:"subtotal,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	Status    OrderItemStatus `json:"status,omitempty"`
	Product   *EntityRef      `json:"product,omitempty"`
}

// Order is a customer order as returned by the backend.
type Order struct {
	ID        int64       `json:"id"`
	Type      OrderType   `json:"type"`
	Status    OrderStatus `json:"status"`
	Notes     *string     `json:"notes,omitempty"`
	Total     *float64    `json:"total,omitempty"`
	Subtotal  *float64    `json:"subtotal,omitempty"`
	TableID   *int64      `json:"tableId,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty"`
	UpdatedAt string      `json:"updatedAt,omitempty"`
	Items     []OrderItem `json:"items,omitempty"`
}

// TableStatus reports table occupancy.
type TableStatus string

const (
	TableFree     TableStatus = "FREE"
	TableOccupied TableStatus = "OCCUPIED"
)

// Table is a dining table that orders can be attached to.
type Table struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Status    TableStatus `json:"status"`
	CreatedAt string      `json:"createdAt,omitempty"`
	UpdatedAt string      `json:"updatedAt,omitempty"`
}

// KitchenItem is an order line as seen by the kitchen board.
type KitchenItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	ProductID int64           `json:"productId"`
	Qty       int             `json:"qty"`
	Notes     *string         `json:"notes,omitempty"`
	Status    OrderItemStatus `json:"status"`
	Product   *EntityRef      `json:"product,omitempty"`
}

// KitchenOrder is an order with its kitchen items.
type KitchenOrder struct {
	ID        int64         `json:"id"`
	Type      OrderType     `json:"type"`
	Status    OrderStatus   `json:"status"`
	Notes     *string       `json:"notes,omitempty"`
	CreatedAt string        `json:"createdAt,omitempty"`
	Items     []KitchenItem `json:"items"`
}
