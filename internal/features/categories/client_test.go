package categories

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poskit/pos-gateway/internal/features/featuretest"
)

func TestCategories(t *testing.T) {
	gw := featuretest.NewGateway(t)
	gw.Reply(http.MethodGet, "/categories", 0, `[{"id":1,"name":"Bebidas","sortOrder":1,"isActive":true}]`)
	gw.Reply(http.MethodPost, "/categories", http.StatusCreated, `{"id":2,"name":"Postres","sortOrder":2,"isActive":true}`)
	gw.Reply(http.MethodPatch, "/categories/2", 0, `{"id":2,"name":"Postres","sortOrder":2,"isActive":false}`)
	c := NewClient(gw.Client(t))
	ctx := context.Background()

	active := true
	list, err := c.List(ctx, &active)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bebidas", list[0].Name)
	assert.Equal(t, "isActive=true", gw.Last(t).Query)

	_, err = c.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, gw.Last(t).Query)

	created, err := c.Create(ctx, CreateInput{Name: "Postres", SortOrder: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)
	assert.JSONEq(t, `{"name":"Postres","sortOrder":2}`, gw.Last(t).Body)

	inactive := false
	updated, err := c.Update(ctx, 2, UpdateInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.JSONEq(t, `{"isActive":false}`, gw.Last(t).Body)
}
