package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPresenceOnlineAt(t *testing.T) {
	now := time.Now()
	staleAfter := 60 * time.Second

	t.Run("fresh heartbeat is online", func(t *testing.T) {
		p := &Presence{IsOnline: true, LastSeen: now.Add(-10 * time.Second).UnixMilli()}
		assert.True(t, p.OnlineAt(now, staleAfter))
	})

	t.Run("offline flag wins", func(t *testing.T) {
		p := &Presence{IsOnline: false, LastSeen: now.UnixMilli()}
		assert.False(t, p.OnlineAt(now, staleAfter))
	})

	t.Run("stale heartbeat reports offline even with flag set", func(t *testing.T) {
		// Tab crashed without firing the unload beacon
		p := &Presence{IsOnline: true, LastSeen: now.Add(-2 * time.Minute).UnixMilli()}
		assert.False(t, p.OnlineAt(now, staleAfter))
	})

	t.Run("exactly at the staleness boundary is online", func(t *testing.T) {
		p := &Presence{IsOnline: true, LastSeen: now.Add(-staleAfter).UnixMilli()}
		assert.True(t, p.OnlineAt(now, staleAfter))
	})
}
