package kitchen

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/features/featuretest"
)

func TestBuildBoardGroupsByStatus(t *testing.T) {
	orders := []domain.KitchenOrder{
		{ID: 1, Type: domain.OrderTypeDineIn, Items: []domain.KitchenItem{
			{ID: 10, OrderID: 1, Status: domain.OrderItemPending},
			{ID: 11, OrderID: 1, Status: domain.OrderItemReady},
		}},
		{ID: 2, Type: domain.OrderTypeTakeout, Items: []domain.KitchenItem{
			{ID: 20, OrderID: 2, Status: domain.OrderItemPending},
			{ID: 21, OrderID: 2, Status: domain.OrderItemCanceled},
		}},
	}

	board := BuildBoard(orders)

	pending := board[domain.OrderItemPending]
	require.Len(t, pending, 2)
	assert.Equal(t, int64(10), pending[0].ID)
	assert.Equal(t, domain.OrderTypeDineIn, pending[0].OrderType)
	assert.Equal(t, domain.OrderTypeTakeout, pending[1].OrderType)
	assert.Empty(t, board[domain.OrderItemInProgress])
	assert.Len(t, board[domain.OrderItemReady], 1)
	assert.Len(t, board[domain.OrderItemCanceled], 1)
	for _, col := range Columns {
		assert.NotNil(t, board[col])
	}
}

func TestNextActions(t *testing.T) {
	tests := []struct {
		status domain.OrderItemStatus
		want   []domain.OrderItemStatus
	}{
		{domain.OrderItemPending, []domain.OrderItemStatus{domain.OrderItemInProgress, domain.OrderItemCanceled}},
		{domain.OrderItemInProgress, []domain.OrderItemStatus{domain.OrderItemReady, domain.OrderItemCanceled}},
		{domain.OrderItemReady, nil},
		{domain.OrderItemCanceled, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, NextActions(tt.status))
		})
	}
	assert.False(t, CanTransition(domain.OrderItemPending, domain.OrderItemReady))
}

func TestUpdateItem(t *testing.T) {
	gw := featuretest.NewGateway(t)
	gw.Reply(http.MethodPatch, "/kitchen/orders/3/items/30", 0, `{"id":3,"type":"DINE_IN","status":"SENT_TO_KITCHEN","items":[{"id":30,"orderId":3,"productId":1,"qty":1,"status":"IN_PROGRESS"}]}`)
	c := NewClient(gw.Client(t))

	order, err := c.UpdateItem(context.Background(), 3, domain.KitchenItem{ID: 30, Status: domain.OrderItemPending}, domain.OrderItemInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderItemInProgress, order.Items[0].Status)
	assert.JSONEq(t, `{"status":"IN_PROGRESS"}`, gw.Last(t).Body)

	_, err = c.UpdateItem(context.Background(), 3, domain.KitchenItem{ID: 30, Status: domain.OrderItemReady}, domain.OrderItemCanceled)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, 1, gw.Calls())
}

func TestListPassesStatus(t *testing.T) {
	gw := featuretest.NewGateway(t)
	gw.Reply(http.MethodGet, "/kitchen/orders", 0, `[]`)
	c := NewClient(gw.Client(t))

	orders, err := c.List(context.Background(), domain.OrderStatusSentToKitchen)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, "status=SENT_TO_KITCHEN", gw.Last(t).Query)
}
