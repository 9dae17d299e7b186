package productmodifiers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poskit/pos-gateway/internal/features/featuretest"
)

func TestProductModifierGroups(t *testing.T) {
	gw := featuretest.NewGateway(t)
	gw.Reply(http.MethodGet, "/products/5/modifier-groups", 0, `[{"productId":5,"groupId":3,"sortOrder":1,"group":{"id":3,"name":"Salsas"}}]`)
	gw.Reply(http.MethodPost, "/products/5/modifier-groups", http.StatusCreated, `{"productId":5,"groupId":4,"sortOrder":2,"group":null}`)
	gw.Reply(http.MethodDelete, "/products/5/modifier-groups/3", 0, `{"ok":true}`)
	gw.Reply(http.MethodDelete, "/products/5/modifier-groups/4", 0, `{"ok":false}`)
	c := NewClient(gw.Client(t))
	ctx := context.Background()

	links, err := c.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.NotNil(t, links[0].Group)
	assert.Equal(t, "Salsas", links[0].Group.Name)

	attached, err := c.Attach(ctx, 5, AttachInput{GroupID: 4, SortOrder: 2})
	require.NoError(t, err)
	assert.Nil(t, attached.Group)
	assert.JSONEq(t, `{"groupId":4,"sortOrder":2}`, gw.Last(t).Body)

	ok, err := c.Detach(ctx, 5, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Detach(ctx, 5, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}
