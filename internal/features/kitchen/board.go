package kitchen

import (
	"errors"

	"github.com/poskit/pos-gateway/internal/domain"
)

// ErrInvalidTransition is returned for an item status move the kitchen does not allow.
var ErrInvalidTransition = errors.New("kitchen: invalid item transition")

// Columns are the board columns, in display order.
var Columns = []domain.OrderItemStatus{
	domain.OrderItemPending,
	domain.OrderItemInProgress,
	domain.OrderItemReady,
}

// BoardItem is a kitchen item with the type of the order it belongs to.
type BoardItem struct {
	domain.KitchenItem
	OrderType domain.OrderType `json:"orderType"`
}

// Board groups items by status. Canceled items are kept under their own key
// but have no column.
type Board map[domain.OrderItemStatus][]BoardItem

// BuildBoard flattens orders into board items, keeping order and item order.
func BuildBoard(orders []domain.KitchenOrder) Board {
	board := Board{
		domain.OrderItemPending:    {},
		domain.OrderItemInProgress: {},
		domain.OrderItemReady:      {},
		domain.OrderItemCanceled:   {},
	}
	for _, o := range orders {
		for _, item := range o.Items {
			board[item.Status] = append(board[item.Status], BoardItem{KitchenItem: item, OrderType: o.Type})
		}
	}
	return board
}

// NextActions lists the statuses an item may move to.
func NextActions(status domain.OrderItemStatus) []domain.OrderItemStatus {
	var next []domain.OrderItemStatus
	switch status {
	case domain.OrderItemPending:
		next = append(next, domain.OrderItemInProgress)
	case domain.OrderItemInProgress:
		next = append(next, domain.OrderItemReady)
	}
	if status != domain.OrderItemCanceled && status != domain.OrderItemReady {
		next = append(next, domain.OrderItemCanceled)
	}
	return next
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to domain.OrderItemStatus) bool {
	for _, s := range NextActions(from) {
		if s == to {
			return true
		}
	}
	return false
}
