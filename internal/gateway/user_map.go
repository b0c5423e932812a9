package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alumnet/reunion/pkg/constant"
	"github.com/redis/go-redis/v9"
)

// UserMap manages user connections. A user may be connected from
// several tabs at once; the redis online key mirrors local state for
// multi-instance deployments.
type UserMap struct {
	mu    sync.RWMutex
	users map[string][]*Client // userId -> open clients
	rdb   *redis.Client
}

// NewUserMap creates a new UserMap
func NewUserMap(rdb *redis.Client) *UserMap {
	return &UserMap{
		users: make(map[string][]*Client),
		rdb:   rdb,
	}
}

// Register registers a client and returns true when this is the user's
// first open connection.
func (m *UserMap) Register(ctx context.Context, client *Client) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	clients := m.users[client.UserId]
	first := len(clients) == 0
	m.users[client.UserId] = append(clients, client)

	m.setOnline(ctx, client.UserId)
	return first
}

// Unregister unregisters a client and returns true when the user has no
// connections left.
func (m *UserMap) Unregister(ctx context.Context, client *Client) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	clients, exists := m.users[client.UserId]
	if !exists {
		return false
	}

	remaining := make([]*Client, 0, len(clients))
	for _, c := range clients {
		if c.ConnId != client.ConnId {
			remaining = append(remaining, c)
		}
	}

	if len(remaining) == 0 {
		delete(m.users, client.UserId)
		m.setOffline(ctx, client.UserId)
		return true
	}

	m.users[client.UserId] = remaining
	return false
}

// GetAll gets all clients for a user
func (m *UserMap) GetAll(userId string) ([]*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clients, exists := m.users[userId]
	if !exists {
		return nil, false
	}

	// Copy so callers iterate without the lock
	out := make([]*Client, len(clients))
	copy(out, clients)
	return out, true
}

// HasConnection checks if user has any connection on this instance
func (m *UserMap) HasConnection(userId string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.users[userId]) > 0
}

// GetOnlineUserCount returns the number of locally connected users
func (m *UserMap) GetOnlineUserCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// GetOnlineConnCount returns the total number of local connections
func (m *UserMap) GetOnlineConnCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, clients := range m.users {
		count += len(clients)
	}
	return count
}

// IsOnline checks if user is online, consulting redis for connections
// held by other instances.
func (m *UserMap) IsOnline(ctx context.Context, userId string) bool {
	if m.HasConnection(userId) {
		return true
	}

	if m.rdb != nil {
		key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
		exists, _ := m.rdb.Exists(ctx, key).Result()
		return exists > 0
	}

	return false
}

// RefreshOnlineStatus extends the online key TTL while the user still
// has a local connection. Called from the pong path.
func (m *UserMap) RefreshOnlineStatus(ctx context.Context, userId string) {
	if m.rdb == nil {
		return
	}

	if m.HasConnection(userId) {
		key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
		m.rdb.Expire(ctx, key, onlineKeyTTL())
	}
}

func (m *UserMap) setOnline(ctx context.Context, userId string) {
	if m.rdb == nil {
		return
	}
	key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
	m.rdb.Set(ctx, key, "1", onlineKeyTTL())
}

func (m *UserMap) setOffline(ctx context.Context, userId string) {
	if m.rdb == nil {
		return
	}
	key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
	m.rdb.Del(ctx, key)
}

// onlineKeyTTL matches the presence staleness window so a dead
// connection and a stopped heartbeat expire together.
func onlineKeyTTL() time.Duration {
	return constant.PresenceStaleAfter
}
