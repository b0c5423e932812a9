package service

import (
	"context"
	"strings"

	"github.com/alumnet/reunion/internal/entity"
	"github.com/alumnet/reunion/internal/repository"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/alumnet/reunion/pkg/idgen"
	"github.com/mbeoliero/kit/log"
	"gorm.io/gorm"
)

// MessagePusher interface for pushing messages to connected clients
type MessagePusher interface {
	AsyncPushToUsers(msg *entity.MessageInfo, userIds []string, excludeConnId string)
}

// MessageService handles message business logic
type MessageService struct {
	msgRepo     *repository.MessageRepo
	convRepo    *repository.ConversationRepo
	profileRepo *repository.ProfileRepo
	repos       *repository.Repositories
	pusher      MessagePusher
}

// NewMessageService creates a new MessageService
func NewMessageService(repos *repository.Repositories) *MessageService {
	return &MessageService{
		msgRepo:     repos.Message,
		convRepo:    repos.Conversation,
		profileRepo: repos.Profile,
		repos:       repos,
	}
}

// SetPusher sets the message pusher
func (s *MessageService) SetPusher(pusher MessagePusher) {
	s.pusher = pusher
}

// SendMessageRequest represents a send message request
type SendMessageRequest struct {
	ConversationId string  `json:"conversation_id"`
	Content        *string `json:"content,omitempty"`
	MessageType    string  `json:"message_type"`
	MediaUrl       *string `json:"media_url,omitempty"`
}

// validateMessage checks the content rules per message type: text needs
// non-blank content and no media url, image and video need a media url.
func validateMessage(req *SendMessageRequest) error {
	if !constant.ValidMessageType(req.MessageType) {
		return errcode.ErrBadMessageType
	}

	switch req.MessageType {
	case constant.MessageTypeText:
		if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
			return errcode.ErrEmptyMessage
		}
		if req.MediaUrl != nil {
			return errcode.ErrInvalidParam
		}
	default:
		if req.MediaUrl == nil || strings.TrimSpace(*req.MediaUrl) == "" {
			return errcode.ErrMediaRequired
		}
	}
	return nil
}

// SendMessage persists a message, bumps the conversation's activity
// timestamp and pushes to every other connected participant.
func (s *MessageService) SendMessage(ctx context.Context, senderId string, req *SendMessageRequest) (*entity.MessageInfo, error) {
	if req.ConversationId == "" {
		return nil, errcode.ErrInvalidParam
	}
	if err := validateMessage(req); err != nil {
		return nil, err
	}

	conv, err := s.convRepo.GetById(ctx, req.ConversationId)
	if err != nil {
		log.CtxError(ctx, "get conversation failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if conv == nil {
		return nil, errcode.ErrConvNotFound
	}

	isMember, err := s.convRepo.IsParticipant(ctx, req.ConversationId, senderId)
	if err != nil {
		log.CtxError(ctx, "check participant failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if !isMember {
		return nil, errcode.ErrNotParticipant
	}

	msgId, err := idgen.NextNumericID()
	if err != nil {
		log.CtxError(ctx, "generate message id failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	now := entity.NowUnixMilli()
	msg := &entity.Message{
		Id:             msgId,
		ConversationId: req.ConversationId,
		SenderId:       senderId,
		Content:        req.Content,
		MessageType:    req.MessageType,
		MediaUrl:       req.MediaUrl,
		CreatedAt:      now,
	}

	err = s.repos.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.msgRepo.CreateTx(tx, msg); err != nil {
			return err
		}
		return s.convRepo.TouchTx(tx, req.ConversationId, now)
	})
	if err != nil {
		log.CtxError(ctx, "send message failed: %v", err)
		return nil, errcode.ErrSendFailed
	}

	// The sender has read their own message.
	_ = s.convRepo.UpdateLastRead(ctx, req.ConversationId, senderId, now)

	info := s.enrich(ctx, msg)

	if s.pusher != nil {
		userIds, err := s.convRepo.GetParticipantUserIds(ctx, req.ConversationId)
		if err != nil {
			log.CtxWarn(ctx, "get participants for push failed: %v", err)
		} else {
			s.pusher.AsyncPushToUsers(info, userIds, "")
		}
	}

	log.CtxInfo(ctx, "message sent: conv_id=%s, sender_id=%s, type=%s",
		req.ConversationId, senderId, req.MessageType)
	return info, nil
}

// ListMessages gets a conversation's messages in chronological order,
// each enriched with the sender's current profile.
func (s *MessageService) ListMessages(ctx context.Context, userId, convId string, limit int) ([]*entity.MessageInfo, error) {
	isMember, err := s.convRepo.IsParticipant(ctx, convId, userId)
	if err != nil {
		log.CtxError(ctx, "check participant failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if !isMember {
		return nil, errcode.ErrNotParticipant
	}

	msgs, err := s.msgRepo.ListByConversation(ctx, convId, limit)
	if err != nil {
		log.CtxError(ctx, "list messages failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	senderSet := make(map[string]bool, len(msgs))
	for _, m := range msgs {
		senderSet[m.SenderId] = true
	}
	senderIds := make([]string, 0, len(senderSet))
	for id := range senderSet {
		senderIds = append(senderIds, id)
	}

	profiles, err := s.profileRepo.GetByUserIds(ctx, senderIds)
	if err != nil {
		log.CtxError(ctx, "get sender profiles failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	infos := make([]*entity.MessageInfo, 0, len(msgs))
	for _, m := range msgs {
		var name string
		var avatar *string
		if p, ok := profiles[m.SenderId]; ok {
			name = p.DisplayName
			avatar = p.AvatarUrl
		}
		infos = append(infos, m.ToMessageInfo(name, avatar))
	}
	return infos, nil
}

// UnreadTotal sums unread messages across the caller's conversations
func (s *MessageService) UnreadTotal(ctx context.Context, userId string) (int64, error) {
	memberRows, err := s.convRepo.GetUserParticipants(ctx, userId)
	if err != nil {
		log.CtxError(ctx, "get user participants failed: %v", err)
		return 0, errcode.ErrInternalServer
	}

	convIds := make([]string, 0, len(memberRows))
	for _, p := range memberRows {
		convIds = append(convIds, p.ConversationId)
	}

	total, err := s.msgRepo.CountUnreadTotal(ctx, userId, convIds)
	if err != nil {
		log.CtxError(ctx, "count unread total failed: %v", err)
		return 0, errcode.ErrInternalServer
	}
	return total, nil
}

// enrich attaches the sender's current profile to a stored message
func (s *MessageService) enrich(ctx context.Context, msg *entity.Message) *entity.MessageInfo {
	var name string
	var avatar *string
	if p, err := s.profileRepo.GetByUserId(ctx, msg.SenderId); err == nil && p != nil {
		name = p.DisplayName
		avatar = p.AvatarUrl
	}
	return msg.ToMessageInfo(name, avatar)
}
