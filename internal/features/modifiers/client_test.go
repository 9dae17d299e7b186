package modifiers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poskit/pos-gateway/internal/features/featuretest"
)

func TestGroups(t *testing.T) {
	gw := featuretest.NewGateway(t)
	const group = `{"id":3,"name":"Salsas","required":false,"minSelect":0,"maxSelect":2,"multi":true,"isActive":true,"options":[{"id":8,"groupId":3,"name":"Verde","priceDelta":0,"isActive":true}]}`
	gw.Reply(http.MethodGet, "/modifier-groups", 0, `[`+group+`]`)
	gw.Reply(http.MethodGet, "/modifier-groups/3", 0, group)
	gw.Reply(http.MethodPost, "/modifier-groups", http.StatusCreated, group)
	gw.Reply(http.MethodPatch, "/modifier-groups/3", 0, group)
	gw.Reply(http.MethodPatch, "/modifier-groups/3/toggle-active", 0, `{"id":3,"name":"Salsas","isActive":false}`)
	gw.Reply(http.MethodDelete, "/modifier-groups/3", 0, ``)
	c := NewClient(gw.Client(t))
	ctx := context.Background()

	groups, err := c.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Options, 1)
	assert.Equal(t, "Verde", groups[0].Options[0].Name)

	_, err = c.GetGroup(ctx, 3)
	require.NoError(t, err)

	_, err = c.CreateGroup(ctx, GroupInput{Name: "Salsas", MaxSelect: 2, Multi: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Salsas","required":false,"minSelect":0,"maxSelect":2,"multi":true}`, gw.Last(t).Body)

	maxSel := 3
	_, err = c.UpdateGroup(ctx, 3, GroupUpdate{MaxSelect: &maxSel})
	require.NoError(t, err)
	assert.JSONEq(t, `{"maxSelect":3}`, gw.Last(t).Body)

	toggled, err := c.ToggleGroupActive(ctx, 3)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	require.NoError(t, c.DeleteGroup(ctx, 3))
}

func TestOptions(t *testing.T) {
	gw := featuretest.NewGateway(t)
	const option = `{"id":8,"groupId":3,"name":"Verde","priceDelta":5,"isActive":true}`
	gw.Reply(http.MethodPost, "/modifier-options", http.StatusCreated, option)
	gw.Reply(http.MethodPatch, "/modifier-options/8", 0, option)
	gw.Reply(http.MethodPatch, "/modifier-options/8/toggle-active", 0, option)
	gw.Reply(http.MethodDelete, "/modifier-options/8", http.StatusNoContent, ``)
	c := NewClient(gw.Client(t))
	ctx := context.Background()

	created, err := c.CreateOption(ctx, OptionInput{GroupID: 3, Name: "Verde", PriceDelta: 5})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, created.PriceDelta, 0.001)

	name := "Roja"
	_, err = c.UpdateOption(ctx, 8, OptionUpdate{Name: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Roja"}`, gw.Last(t).Body)

	_, err = c.ToggleOptionActive(ctx, 8)
	require.NoError(t, err)
	require.NoError(t, c.DeleteOption(ctx, 8))
	assert.Equal(t, http.MethodDelete, gw.Last(t).Method)
}
