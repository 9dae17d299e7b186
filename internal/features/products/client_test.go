package products

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poskit/pos-gateway/internal/features/featuretest"
)

func TestProducts(t *testing.T) {
	gw := featuretest.NewGateway(t)
	const product = `{"id":5,"name":"Taco","price":35.5,"isActive":true,"categoryId":1,"category":{"id":1,"name":"Comida"}}`
	gw.Reply(http.MethodGet, "/products", 0, `[`+product+`]`)
	gw.Reply(http.MethodGet, "/products/5", 0, product)
	gw.Reply(http.MethodPost, "/products", http.StatusCreated, product)
	gw.Reply(http.MethodPatch, "/products/5", 0, product)
	gw.Reply(http.MethodPatch, "/products/5/toggle-active", 0, `{"id":5,"name":"Taco","price":35.5,"isActive":false}`)
	gw.Reply(http.MethodDelete, "/products/5", http.StatusNoContent, ``)
	c := NewClient(gw.Client(t))
	ctx := context.Background()

	cat := int64(1)
	list, err := c.List(ctx, Filters{CategoryID: &cat, Query: "ta"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Category)
	assert.Equal(t, "Comida", list[0].Category.Name)
	assert.Equal(t, "categoryId=1&q=ta", gw.Last(t).Query)

	got, err := c.Get(ctx, 5)
	require.NoError(t, err)
	assert.InDelta(t, 35.5, got.Price, 0.001)

	_, err = c.Create(ctx, CreateInput{Name: "Taco", Price: 35.5, CategoryID: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Taco","price":35.5,"categoryId":1}`, gw.Last(t).Body)

	price := 40.0
	_, err = c.Update(ctx, 5, UpdateInput{Price: &price})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":40}`, gw.Last(t).Body)

	toggled, err := c.ToggleActive(ctx, 5)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	require.NoError(t, c.Delete(ctx, 5))
}
