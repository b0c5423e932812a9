package service

import (
	"context"
	"strings"
	"time"

	"github.com/alumnet/reunion/internal/entity"
	"github.com/alumnet/reunion/internal/repository"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/google/uuid"
	"github.com/mbeoliero/kit/log"
)

// ConversationService handles conversation business logic
type ConversationService struct {
	convRepo     *repository.ConversationRepo
	msgRepo      *repository.MessageRepo
	profileRepo  *repository.ProfileRepo
	presenceRepo *repository.PresenceRepo
}

// NewConversationService creates a new ConversationService
func NewConversationService(repos *repository.Repositories) *ConversationService {
	return &ConversationService{
		convRepo:     repos.Conversation,
		msgRepo:      repos.Message,
		profileRepo:  repos.Profile,
		presenceRepo: repos.Presence,
	}
}

// CreateDirectRequest represents a direct conversation request
type CreateDirectRequest struct {
	PeerId string `json:"peer_id"`
}

// CreateGroupRequest represents a group conversation request
type CreateGroupRequest struct {
	Name      string   `json:"name"`
	MemberIds []string `json:"member_ids"`
}

// CreateDirect finds or creates the direct conversation between the
// caller and peer. The unique direct_key index makes this idempotent
// under concurrent creation by both sides.
func (s *ConversationService) CreateDirect(ctx context.Context, userId string, req *CreateDirectRequest) (*entity.ConversationInfo, error) {
	peerId := strings.TrimSpace(req.PeerId)
	if peerId == "" {
		return nil, errcode.ErrInvalidParam
	}
	if peerId == userId {
		return nil, errcode.ErrSelfConversation
	}

	peerProfile, err := s.profileRepo.GetByUserId(ctx, peerId)
	if err != nil {
		log.CtxError(ctx, "get peer profile failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if peerProfile == nil {
		return nil, errcode.ErrUserNotFound
	}

	directKey := entity.GenDirectKey(userId, peerId)

	existing, err := s.convRepo.GetByDirectKey(ctx, directKey)
	if err != nil {
		log.CtxError(ctx, "lookup direct conversation failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if existing != nil {
		return s.buildInfo(ctx, userId, existing)
	}

	now := entity.NowUnixMilli()
	conv := &entity.Conversation{
		Id:        uuid.New().String(),
		Type:      constant.ConversationDirect,
		DirectKey: &directKey,
		CreatedBy: userId,
		CreatedAt: now,
		UpdatedAt: now,
	}
	participants := []*entity.Participant{
		{ConversationId: conv.Id, UserId: userId, JoinedAt: now},
		{ConversationId: conv.Id, UserId: peerId, JoinedAt: now},
	}

	if err := s.convRepo.Create(ctx, conv, participants); err != nil {
		// The peer may have created the same conversation concurrently
		// and won the unique index; reread before failing.
		winner, getErr := s.convRepo.GetByDirectKey(ctx, directKey)
		if getErr == nil && winner != nil {
			return s.buildInfo(ctx, userId, winner)
		}
		log.CtxError(ctx, "create direct conversation failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "direct conversation created: id=%s, users=%s,%s", conv.Id, userId, peerId)
	return s.buildInfo(ctx, userId, conv)
}

// CreateGroup creates a group conversation with the caller plus the
// requested members.
func (s *ConversationService) CreateGroup(ctx context.Context, userId string, req *CreateGroupRequest) (*entity.ConversationInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errcode.ErrGroupNameRequired
	}

	memberSet := make(map[string]bool, len(req.MemberIds)+1)
	memberSet[userId] = true
	others := 0
	for _, id := range req.MemberIds {
		id = strings.TrimSpace(id)
		if id == "" || memberSet[id] {
			continue
		}
		memberSet[id] = true
		others++
	}
	if others == 0 {
		return nil, errcode.ErrEmptyGroup
	}

	now := entity.NowUnixMilli()
	conv := &entity.Conversation{
		Id:        uuid.New().String(),
		Type:      constant.ConversationGroup,
		Name:      name,
		CreatedBy: userId,
		CreatedAt: now,
		UpdatedAt: now,
	}

	participants := make([]*entity.Participant, 0, len(memberSet))
	for id := range memberSet {
		participants = append(participants, &entity.Participant{
			ConversationId: conv.Id,
			UserId:         id,
			JoinedAt:       now,
		})
	}

	if err := s.convRepo.Create(ctx, conv, participants); err != nil {
		log.CtxError(ctx, "create group conversation failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "group conversation created: id=%s, members=%d", conv.Id, len(participants))
	return s.buildInfo(ctx, userId, conv)
}

// ListConversations builds the caller's chat directory: conversations
// ordered by latest activity, each carrying participants, last message
// preview and unread count. Everything is assembled from a handful of
// batched queries rather than per-conversation round trips.
func (s *ConversationService) ListConversations(ctx context.Context, userId string) ([]*entity.ConversationInfo, error) {
	memberRows, err := s.convRepo.GetUserParticipants(ctx, userId)
	if err != nil {
		log.CtxError(ctx, "get user participants failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if len(memberRows) == 0 {
		return []*entity.ConversationInfo{}, nil
	}

	convIds := make([]string, 0, len(memberRows))
	for _, p := range memberRows {
		convIds = append(convIds, p.ConversationId)
	}

	convs, err := s.convRepo.GetConversationsByIds(ctx, convIds)
	if err != nil {
		log.CtxError(ctx, "get conversations failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	participantsByConv, err := s.convRepo.GetParticipantsByConvIds(ctx, convIds)
	if err != nil {
		log.CtxError(ctx, "get participants failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	latestByConv, err := s.msgRepo.LatestByConversations(ctx, convIds)
	if err != nil {
		log.CtxError(ctx, "get latest messages failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	unreadByConv, err := s.msgRepo.CountUnreadByConversations(ctx, userId, convIds)
	if err != nil {
		log.CtxError(ctx, "count unread failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	// One profile/presence batch across every participant of every
	// conversation.
	userIdSet := make(map[string]bool)
	for _, rows := range participantsByConv {
		for _, p := range rows {
			userIdSet[p.UserId] = true
		}
	}
	userIds := make([]string, 0, len(userIdSet))
	for id := range userIdSet {
		userIds = append(userIds, id)
	}

	profiles, err := s.profileRepo.GetByUserIds(ctx, userIds)
	if err != nil {
		log.CtxError(ctx, "get profiles failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	presences, err := s.presenceRepo.GetByUserIds(ctx, userIds)
	if err != nil {
		log.CtxError(ctx, "get presences failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	now := time.Now()
	infos := make([]*entity.ConversationInfo, 0, len(convs))
	for _, conv := range convs {
		info := &entity.ConversationInfo{
			Id:          conv.Id,
			Type:        conv.Type,
			Name:        conv.Name,
			CreatedBy:   conv.CreatedBy,
			UpdatedAt:   conv.UpdatedAt,
			UnreadCount: unreadByConv[conv.Id],
		}

		for _, p := range participantsByConv[conv.Id] {
			pi := &entity.ParticipantInfo{
				UserId:     p.UserId,
				LastReadAt: p.LastReadAt,
			}
			if profile, ok := profiles[p.UserId]; ok {
				pi.DisplayName = profile.DisplayName
				pi.AvatarUrl = profile.AvatarUrl
			}
			if presence, ok := presences[p.UserId]; ok {
				pi.IsOnline = presence.OnlineAt(now, constant.PresenceStaleAfter)
			}
			info.Participants = append(info.Participants, pi)

			// Direct conversations render under the peer's name.
			if conv.Type == constant.ConversationDirect && p.UserId != userId {
				info.Name = pi.DisplayName
			}
		}

		if msg, ok := latestByConv[conv.Id]; ok {
			info.LastMessage = &entity.LastMessageInfo{
				Content:     msg.Content,
				MessageType: msg.MessageType,
				SenderId:    msg.SenderId,
				CreatedAt:   msg.CreatedAt,
				Preview:     entity.MessagePreview(msg.MessageType, msg.Content),
				TimeLabel:   entity.FormatMessageTime(msg.CreatedAt, now),
			}
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// GetConversation gets one conversation the caller belongs to
func (s *ConversationService) GetConversation(ctx context.Context, userId, convId string) (*entity.ConversationInfo, error) {
	conv, err := s.requireMembership(ctx, userId, convId)
	if err != nil {
		return nil, err
	}
	return s.buildInfo(ctx, userId, conv)
}

// MarkRead moves the caller's read watermark to now
func (s *ConversationService) MarkRead(ctx context.Context, userId, convId string) error {
	conv, err := s.convRepo.GetById(ctx, convId)
	if err != nil {
		log.CtxError(ctx, "get conversation failed: %v", err)
		return errcode.ErrInternalServer
	}
	if conv == nil {
		return errcode.ErrConvNotFound
	}

	member, err := s.convRepo.GetParticipant(ctx, convId, userId)
	if err != nil {
		log.CtxError(ctx, "get participant failed: %v", err)
		return errcode.ErrInternalServer
	}
	if member == nil {
		return errcode.ErrNotParticipant
	}

	if err := s.convRepo.UpdateLastRead(ctx, convId, userId, entity.NowUnixMilli()); err != nil {
		log.CtxError(ctx, "update last read failed: %v", err)
		return errcode.ErrInternalServer
	}
	return nil
}

// requireMembership loads the conversation and checks the caller is in it
func (s *ConversationService) requireMembership(ctx context.Context, userId, convId string) (*entity.Conversation, error) {
	conv, err := s.convRepo.GetById(ctx, convId)
	if err != nil {
		log.CtxError(ctx, "get conversation failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if conv == nil {
		return nil, errcode.ErrConvNotFound
	}

	ok, err := s.convRepo.IsParticipant(ctx, convId, userId)
	if err != nil {
		log.CtxError(ctx, "check participant failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if !ok {
		return nil, errcode.ErrNotParticipant
	}
	return conv, nil
}

// buildInfo assembles a single directory entry
func (s *ConversationService) buildInfo(ctx context.Context, userId string, conv *entity.Conversation) (*entity.ConversationInfo, error) {
	participantsByConv, err := s.convRepo.GetParticipantsByConvIds(ctx, []string{conv.Id})
	if err != nil {
		log.CtxError(ctx, "get participants failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	rows := participantsByConv[conv.Id]

	userIds := make([]string, 0, len(rows))
	for _, p := range rows {
		userIds = append(userIds, p.UserId)
	}
	profiles, err := s.profileRepo.GetByUserIds(ctx, userIds)
	if err != nil {
		log.CtxError(ctx, "get profiles failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	presences, err := s.presenceRepo.GetByUserIds(ctx, userIds)
	if err != nil {
		log.CtxError(ctx, "get presences failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	unreadByConv, err := s.msgRepo.CountUnreadByConversations(ctx, userId, []string{conv.Id})
	if err != nil {
		log.CtxError(ctx, "count unread failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	latestByConv, err := s.msgRepo.LatestByConversations(ctx, []string{conv.Id})
	if err != nil {
		log.CtxError(ctx, "get latest message failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	now := time.Now()
	info := &entity.ConversationInfo{
		Id:          conv.Id,
		Type:        conv.Type,
		Name:        conv.Name,
		CreatedBy:   conv.CreatedBy,
		UpdatedAt:   conv.UpdatedAt,
		UnreadCount: unreadByConv[conv.Id],
	}

	for _, p := range rows {
		pi := &entity.ParticipantInfo{
			UserId:     p.UserId,
			LastReadAt: p.LastReadAt,
		}
		if profile, ok := profiles[p.UserId]; ok {
			pi.DisplayName = profile.DisplayName
			pi.AvatarUrl = profile.AvatarUrl
		}
		if presence, ok := presences[p.UserId]; ok {
			pi.IsOnline = presence.OnlineAt(now, constant.PresenceStaleAfter)
		}
		info.Participants = append(info.Participants, pi)

		if conv.Type == constant.ConversationDirect && p.UserId != userId {
			info.Name = pi.DisplayName
		}
	}

	if msg, ok := latestByConv[conv.Id]; ok {
		info.LastMessage = &entity.LastMessageInfo{
			Content:     msg.Content,
			MessageType: msg.MessageType,
			SenderId:    msg.SenderId,
			CreatedAt:   msg.CreatedAt,
			Preview:     entity.MessagePreview(msg.MessageType, msg.Content),
			TimeLabel:   entity.FormatMessageTime(msg.CreatedAt, now),
		}
	}

	return info, nil
}
