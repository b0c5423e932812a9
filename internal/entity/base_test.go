package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenDirectKey(t *testing.T) {
	// Key is order-independent
	assert.Equal(t, GenDirectKey("alice", "bob"), GenDirectKey("bob", "alice"))
	assert.Equal(t, "di_alice:bob", GenDirectKey("bob", "alice"))

	// User ids containing underscores survive the ":" separator
	key := GenDirectKey("u_1", "u_2")
	assert.Equal(t, "di_u_1:u_2", key)
}

func TestDirectKeyContains(t *testing.T) {
	key := GenDirectKey("alice", "bob")

	assert.True(t, DirectKeyContains(key, "alice"))
	assert.True(t, DirectKeyContains(key, "bob"))
	assert.False(t, DirectKeyContains(key, "carol"))
	assert.False(t, DirectKeyContains(key, "ali"))
	assert.False(t, DirectKeyContains("garbage", "alice"))
}

func TestMessagePreview(t *testing.T) {
	hello := "hello"

	assert.Equal(t, "hello", MessagePreview("text", &hello))
	assert.Equal(t, "", MessagePreview("text", nil))
	assert.Equal(t, "📷 Photo", MessagePreview("image", &hello))
	assert.Equal(t, "🎥 Video", MessagePreview("video", nil))
}

func TestFormatMessageTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

	t.Run("today shows clock time", func(t *testing.T) {
		ts := time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC).UnixMilli()
		assert.Equal(t, "09:15", FormatMessageTime(ts, now))
	})

	t.Run("yesterday shows label", func(t *testing.T) {
		ts := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC).UnixMilli()
		assert.Equal(t, "Yesterday", FormatMessageTime(ts, now))
	})

	t.Run("older shows date", func(t *testing.T) {
		ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
		assert.Equal(t, "Mar 1, 2026", FormatMessageTime(ts, now))
	})
}
