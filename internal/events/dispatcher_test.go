package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poskit/pos-gateway/internal/domain"
)

func TestDispatcher_DeliversToSubscribersOfType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []EventType
	d.Subscribe(EventLoginSucceeded, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})
	d.Subscribe(EventLoggedOut, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventLoginSucceeded}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventRefreshFailed}))

	assert.Equal(t, []EventType{EventLoginSucceeded}, got)
}

func TestDispatcher_ContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	calls := 0
	d.Subscribe(EventLoggedOut, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventLoggedOut, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventLoggedOut})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestActorFromIdentity(t *testing.T) {
	assert.Equal(t, Actor{}, ActorFromIdentity(nil))
	actor := ActorFromIdentity(&domain.Identity{SubjectID: "1", Email: "a@b.c", Role: domain.RoleAdmin})
	assert.Equal(t, Actor{SubjectID: "1", Email: "a@b.c", Role: domain.RoleAdmin}, actor)
}
