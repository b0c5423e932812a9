package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alumnet/reunion/internal/entity"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PresenceRepo is the repository for presence rows. The durable row
// lives in MySQL; a redis key with TTL mirrors the online flag so that
// liveness expires on its own when heartbeats stop.
type PresenceRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewPresenceRepo creates a new PresenceRepo
func NewPresenceRepo(db *gorm.DB, rdb *redis.Client) *PresenceRepo {
	return &PresenceRepo{db: db, rdb: rdb}
}

// Upsert writes the presence row for a user
func (r *PresenceRepo) Upsert(ctx context.Context, userId string, isOnline bool, lastSeen int64) error {
	row := &entity.Presence{
		UserId:   userId,
		IsOnline: isOnline,
		LastSeen: lastSeen,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_online": isOnline,
			"last_seen": lastSeen,
		}),
	}).Create(row).Error
	if err != nil {
		return err
	}

	if isOnline {
		r.setOnlineKey(ctx, userId)
	} else {
		r.clearOnlineKey(ctx, userId)
	}
	return nil
}

// Get gets the presence row for a user, nil if absent
func (r *PresenceRepo) Get(ctx context.Context, userId string) (*entity.Presence, error) {
	var p entity.Presence
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByUserIds gets presence rows keyed by user Id
func (r *PresenceRepo) GetByUserIds(ctx context.Context, userIds []string) (map[string]*entity.Presence, error) {
	result := make(map[string]*entity.Presence, len(userIds))
	if len(userIds) == 0 {
		return result, nil
	}

	var rows []*entity.Presence
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIds).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, p := range rows {
		result[p.UserId] = p
	}
	return result, nil
}

// IsOnline checks liveness: the redis key is authoritative while it
// lives; after it expires the durable row's staleness rule decides.
func (r *PresenceRepo) IsOnline(ctx context.Context, userId string) bool {
	key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
	exists, err := r.rdb.Exists(ctx, key).Result()
	if err == nil && exists > 0 {
		return true
	}

	p, err := r.Get(ctx, userId)
	if err != nil || p == nil {
		return false
	}
	return p.OnlineAt(time.Now(), constant.PresenceStaleAfter)
}

// setOnlineKey refreshes the redis liveness key
func (r *PresenceRepo) setOnlineKey(ctx context.Context, userId string) {
	key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
	r.rdb.Set(ctx, key, "1", constant.PresenceStaleAfter)
}

// clearOnlineKey drops the redis liveness key
func (r *PresenceRepo) clearOnlineKey(ctx context.Context, userId string) {
	key := fmt.Sprintf(constant.RedisKeyOnline(), userId)
	r.rdb.Del(ctx, key)
}
