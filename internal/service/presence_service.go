package service

import (
	"context"
	"time"

	"github.com/alumnet/reunion/internal/entity"
	"github.com/alumnet/reunion/internal/repository"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/mbeoliero/kit/log"
)

// PresenceService handles heartbeat driven presence
type PresenceService struct {
	presenceRepo *repository.PresenceRepo
}

// NewPresenceService creates a new PresenceService
func NewPresenceService(repos *repository.Repositories) *PresenceService {
	return &PresenceService{
		presenceRepo: repos.Presence,
	}
}

// PresenceInfo represents one user's presence for API responses
type PresenceInfo struct {
	UserId   string `json:"user_id"`
	IsOnline bool   `json:"is_online"`
	LastSeen int64  `json:"last_seen"`
}

// Heartbeat marks the user online and refreshes last_seen. Clients call
// this every 30 seconds while a tab is open; the websocket gateway calls
// it on connect and on pong.
func (s *PresenceService) Heartbeat(ctx context.Context, userId string) error {
	if err := s.presenceRepo.Upsert(ctx, userId, true, entity.NowUnixMilli()); err != nil {
		log.CtxError(ctx, "presence heartbeat failed: user_id=%s, err=%v", userId, err)
		return errcode.ErrInternalServer
	}
	return nil
}

// Offline marks the user offline. Best effort from the client's
// unload beacon; the staleness rule covers the cases where it never
// arrives.
func (s *PresenceService) Offline(ctx context.Context, userId string) error {
	if err := s.presenceRepo.Upsert(ctx, userId, false, entity.NowUnixMilli()); err != nil {
		log.CtxError(ctx, "presence offline failed: user_id=%s, err=%v", userId, err)
		return errcode.ErrInternalServer
	}
	return nil
}

// GetPresence gets one user's effective presence
func (s *PresenceService) GetPresence(ctx context.Context, userId string) (*PresenceInfo, error) {
	p, err := s.presenceRepo.Get(ctx, userId)
	if err != nil {
		log.CtxError(ctx, "get presence failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	info := &PresenceInfo{UserId: userId}
	if p != nil {
		info.IsOnline = p.OnlineAt(time.Now(), constant.PresenceStaleAfter)
		info.LastSeen = p.LastSeen
	}
	return info, nil
}

// GetPresences gets effective presence for several users at once
func (s *PresenceService) GetPresences(ctx context.Context, userIds []string) ([]*PresenceInfo, error) {
	rows, err := s.presenceRepo.GetByUserIds(ctx, userIds)
	if err != nil {
		log.CtxError(ctx, "get presences failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	now := time.Now()
	infos := make([]*PresenceInfo, 0, len(userIds))
	for _, userId := range userIds {
		info := &PresenceInfo{UserId: userId}
		if p, ok := rows[userId]; ok {
			info.IsOnline = p.OnlineAt(now, constant.PresenceStaleAfter)
			info.LastSeen = p.LastSeen
		}
		infos = append(infos, info)
	}
	return infos, nil
}
