package jwt

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alumnet/reunion/pkg/constant"
	"github.com/redis/go-redis/v9"
)

// Token status constants
const (
	TokenStatusNormal  = 1 // Token is valid
	TokenStatusExpired = 2 // Token expired
	TokenStatusLogout  = 3 // Token was logged out
)

// TokenStore manages token storage in Redis
type TokenStore struct {
	rdb          *redis.Client
	accessExpire time.Duration
}

// NewTokenStore creates a new TokenStore
func NewTokenStore(rdb *redis.Client, expireHours int) *TokenStore {
	return &TokenStore{
		rdb:          rdb,
		accessExpire: time.Duration(expireHours) * time.Hour,
	}
}

// tokenKey generates the Redis key for a user's tokens
func (s *TokenStore) tokenKey(userId string) string {
	return fmt.Sprintf(constant.RedisKeyToken(), userId)
}

// StoreToken stores a token in Redis with status.
// A hash is used so a user may hold several live tokens (multiple tabs).
func (s *TokenStore) StoreToken(ctx context.Context, userId, token string) error {
	key := s.tokenKey(userId)

	if err := s.rdb.HSet(ctx, key, token, TokenStatusNormal).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := s.rdb.Expire(ctx, key, s.accessExpire).Err(); err != nil {
		return fmt.Errorf("failed to set token expiry: %w", err)
	}
	return nil
}

// GetTokenStatus returns the stored status of a token, or 0 if unknown
func (s *TokenStore) GetTokenStatus(ctx context.Context, userId, token string) (int, error) {
	val, err := s.rdb.HGet(ctx, s.tokenKey(userId), token).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	status, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	return status, nil
}

// RevokeToken marks a token as logged out
func (s *TokenStore) RevokeToken(ctx context.Context, userId, token string) error {
	return s.rdb.HSet(ctx, s.tokenKey(userId), token, TokenStatusLogout).Err()
}

// RevokeAll removes every token for a user
func (s *TokenStore) RevokeAll(ctx context.Context, userId string) error {
	return s.rdb.Del(ctx, s.tokenKey(userId)).Err()
}
