package orders

import "github.com/poskit/pos-gateway/internal/domain"

// CanSendToKitchen reports whether an open order has something to cook.
func CanSendToKitchen(o *domain.Order) bool {
	return o != nil && o.Status == domain.OrderStatusOpen && len(o.Items) > 0
}

// CanMarkReady reports whether the order is waiting on the kitchen.
func CanMarkReady(o *domain.Order) bool {
	return o != nil && o.Status == domain.OrderStatusSentToKitchen
}

// CanEditItems reports whether items may still be added, changed or removed.
func CanEditItems(o *domain.Order) bool {
	return o != nil && o.Status == domain.OrderStatusOpen
}

// CanBill reports whether a ticket may be created for the order.
func CanBill(o *domain.Order) bool {
	if o == nil {
		return false
	}
	switch o.Status {
	case domain.OrderStatusClosed, domain.OrderStatusCanceled:
		return false
	}
	return len(o.Items) > 0
}
