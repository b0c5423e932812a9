package service

import (
	"context"
	"strings"
	"time"

	"github.com/alumnet/reunion/internal/entity"
	"github.com/alumnet/reunion/internal/repository"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/mbeoliero/kit/log"
)

// ProfileService handles profile business logic
type ProfileService struct {
	profileRepo  *repository.ProfileRepo
	presenceRepo *repository.PresenceRepo
}

// NewProfileService creates a new ProfileService
func NewProfileService(repos *repository.Repositories) *ProfileService {
	return &ProfileService{
		profileRepo:  repos.Profile,
		presenceRepo: repos.Presence,
	}
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	AvatarUrl   *string `json:"avatar_url,omitempty"`
}

// GetProfile gets one profile enriched with presence
func (s *ProfileService) GetProfile(ctx context.Context, userId string) (*entity.ProfileInfo, error) {
	profile, err := s.profileRepo.GetByUserId(ctx, userId)
	if err != nil {
		log.CtxError(ctx, "get profile failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if profile == nil {
		return nil, errcode.ErrUserNotFound
	}

	info := profile.ToProfileInfo()
	s.attachPresence(ctx, map[string]*entity.ProfileInfo{userId: info})
	return info, nil
}

// ListProfiles gets every profile enriched with presence, for the
// chat contact picker.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]*entity.ProfileInfo, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		log.CtxError(ctx, "list profiles failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	infos := make([]*entity.ProfileInfo, 0, len(profiles))
	byUser := make(map[string]*entity.ProfileInfo, len(profiles))
	for _, p := range profiles {
		info := p.ToProfileInfo()
		infos = append(infos, info)
		byUser[p.UserId] = info
	}
	s.attachPresence(ctx, byUser)
	return infos, nil
}

// UpdateProfile updates the caller's own profile
func (s *ProfileService) UpdateProfile(ctx context.Context, userId string, req *UpdateProfileRequest) (*entity.ProfileInfo, error) {
	updates := make(map[string]interface{})
	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, errcode.ErrNameRequired
		}
		updates["display_name"] = name
	}
	if req.AvatarUrl != nil {
		updates["avatar_url"] = *req.AvatarUrl
	}
	if len(updates) == 0 {
		return nil, errcode.ErrInvalidParam
	}

	if err := s.profileRepo.Update(ctx, userId, updates); err != nil {
		log.CtxError(ctx, "update profile failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	return s.GetProfile(ctx, userId)
}

// attachPresence fills IsOnline and LastSeen for the given infos in one
// batched read.
func (s *ProfileService) attachPresence(ctx context.Context, byUser map[string]*entity.ProfileInfo) {
	userIds := make([]string, 0, len(byUser))
	for id := range byUser {
		userIds = append(userIds, id)
	}

	rows, err := s.presenceRepo.GetByUserIds(ctx, userIds)
	if err != nil {
		log.CtxWarn(ctx, "get presence failed: %v", err)
		return
	}

	now := time.Now()
	for userId, info := range byUser {
		if p, ok := rows[userId]; ok {
			info.IsOnline = p.OnlineAt(now, constant.PresenceStaleAfter)
			info.LastSeen = p.LastSeen
		}
	}
}
