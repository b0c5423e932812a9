package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(userId, connId string) *Client {
	return NewClient(nil, userId, "", connId, nil)
}

func TestUserMapRegisterUnregister(t *testing.T) {
	ctx := context.Background()
	m := NewUserMap(nil)

	c1 := newTestClient("u1", "conn-1")
	c2 := newTestClient("u1", "conn-2")

	first := m.Register(ctx, c1)
	assert.True(t, first)
	first = m.Register(ctx, c2)
	assert.False(t, first)

	assert.True(t, m.HasConnection("u1"))
	assert.Equal(t, 1, m.GetOnlineUserCount())
	assert.Equal(t, 2, m.GetOnlineConnCount())

	clients, ok := m.GetAll("u1")
	assert.True(t, ok)
	assert.Len(t, clients, 2)

	// Closing one tab keeps the user online
	offline := m.Unregister(ctx, c1)
	assert.False(t, offline)
	assert.True(t, m.HasConnection("u1"))

	// Closing the last tab takes the user offline
	offline = m.Unregister(ctx, c2)
	assert.True(t, offline)
	assert.False(t, m.HasConnection("u1"))
	assert.Equal(t, 0, m.GetOnlineUserCount())
}

func TestUserMapUnregisterUnknown(t *testing.T) {
	ctx := context.Background()
	m := NewUserMap(nil)

	offline := m.Unregister(ctx, newTestClient("ghost", "conn-x"))
	assert.False(t, offline)
}

func TestUserMapIsOnlineLocalOnly(t *testing.T) {
	ctx := context.Background()
	m := NewUserMap(nil)

	assert.False(t, m.IsOnline(ctx, "u1"))

	m.Register(ctx, newTestClient("u1", "conn-1"))
	assert.True(t, m.IsOnline(ctx, "u1"))
}
