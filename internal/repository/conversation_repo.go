package repository

import (
	"context"
	"errors"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
)

// ConversationRepo is the repository for conversations and participants
type ConversationRepo struct {
	db *gorm.DB
}

// NewConversationRepo creates a new ConversationRepo
func NewConversationRepo(db *gorm.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// Create inserts the conversation and its participant rows in one transaction
func (r *ConversationRepo) Create(ctx context.Context, conv *entity.Conversation, participants []*entity.Participant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		if len(participants) > 0 {
			if err := tx.Create(&participants).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetById gets a conversation by Id, nil if absent
func (r *ConversationRepo) GetById(ctx context.Context, id string) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// GetByDirectKey gets a direct conversation by its pair key, nil if absent
func (r *ConversationRepo) GetByDirectKey(ctx context.Context, directKey string) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := r.db.WithContext(ctx).Where("direct_key = ?", directKey).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// GetUserParticipants gets all participant rows for a user
func (r *ConversationRepo) GetUserParticipants(ctx context.Context, userId string) ([]*entity.Participant, error) {
	var rows []*entity.Participant
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetConversationsByIds gets conversations ordered by latest activity
func (r *ConversationRepo) GetConversationsByIds(ctx context.Context, ids []string) ([]*entity.Conversation, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var convs []*entity.Conversation
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("updated_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

// GetParticipantsByConvIds gets participant rows grouped by conversation Id
func (r *ConversationRepo) GetParticipantsByConvIds(ctx context.Context, convIds []string) (map[string][]*entity.Participant, error) {
	result := make(map[string][]*entity.Participant, len(convIds))
	if len(convIds) == 0 {
		return result, nil
	}

	var rows []*entity.Participant
	err := r.db.WithContext(ctx).Where("conversation_id IN ?", convIds).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, p := range rows {
		result[p.ConversationId] = append(result[p.ConversationId], p)
	}
	return result, nil
}

// GetParticipant gets one participant row, nil if absent
func (r *ConversationRepo) GetParticipant(ctx context.Context, convId, userId string) (*entity.Participant, error) {
	var p entity.Participant
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", convId, userId).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// IsParticipant checks membership
func (r *ConversationRepo) IsParticipant(ctx context.Context, convId, userId string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Participant{}).
		Where("conversation_id = ? AND user_id = ?", convId, userId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetParticipantUserIds gets member user ids of a conversation
func (r *ConversationRepo) GetParticipantUserIds(ctx context.Context, convId string) ([]string, error) {
	var userIds []string
	err := r.db.WithContext(ctx).
		Model(&entity.Participant{}).
		Where("conversation_id = ?", convId).
		Pluck("user_id", &userIds).Error
	if err != nil {
		return nil, err
	}
	return userIds, nil
}

// UpdateLastRead moves the read watermark for a member
func (r *ConversationRepo) UpdateLastRead(ctx context.Context, convId, userId string, readAt int64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Participant{}).
		Where("conversation_id = ? AND user_id = ?", convId, userId).
		Update("last_read_at", readAt).Error
}

// TouchTx bumps the conversation's updated_at inside a caller-managed
// transaction so it sorts to the top of the directory
func (r *ConversationRepo) TouchTx(tx *gorm.DB, convId string, at int64) error {
	return tx.Model(&entity.Conversation{}).
		Where("id = ?", convId).
		Update("updated_at", at).Error
}
