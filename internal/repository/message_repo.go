package repository

import (
	"context"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
)

// MessageRepo is the repository for chat messages
type MessageRepo struct {
	db *gorm.DB
}

// NewMessageRepo creates a new MessageRepo
func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create inserts a message
func (r *MessageRepo) Create(ctx context.Context, msg *entity.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// CreateTx inserts a message inside a caller-managed transaction
func (r *MessageRepo) CreateTx(tx *gorm.DB, msg *entity.Message) error {
	return tx.Create(msg).Error
}

// ListByConversation gets messages in chronological order
func (r *MessageRepo) ListByConversation(ctx context.Context, convId string, limit int) ([]*entity.Message, error) {
	var msgs []*entity.Message
	query := r.db.WithContext(ctx).
		Where("conversation_id = ?", convId).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// LatestByConversations gets the newest message per conversation keyed
// by conversation Id, using a groupwise max join
func (r *MessageRepo) LatestByConversations(ctx context.Context, convIds []string) (map[string]*entity.Message, error) {
	result := make(map[string]*entity.Message, len(convIds))
	if len(convIds) == 0 {
		return result, nil
	}

	var msgs []*entity.Message
	err := r.db.WithContext(ctx).Raw(`
		SELECT m.* FROM chat_messages m
		JOIN (
			SELECT conversation_id, MAX(id) AS id
			FROM chat_messages
			WHERE conversation_id IN ?
			GROUP BY conversation_id
		) latest ON m.id = latest.id`, convIds).
		Scan(&msgs).Error
	if err != nil {
		return nil, err
	}

	for _, m := range msgs {
		result[m.ConversationId] = m
	}
	return result, nil
}

// unreadRow carries one conversation's unread count
type unreadRow struct {
	ConversationId string
	Cnt            int64
}

// CountUnreadByConversations counts, per conversation, messages newer
// than the viewer's read watermark and not sent by the viewer. Rows
// with a NULL watermark contribute zero.
func (r *MessageRepo) CountUnreadByConversations(ctx context.Context, userId string, convIds []string) (map[string]int64, error) {
	result := make(map[string]int64, len(convIds))
	if len(convIds) == 0 {
		return result, nil
	}

	var rows []unreadRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT m.conversation_id AS conversation_id, COUNT(*) AS cnt
		FROM chat_messages m
		JOIN chat_participants p
			ON p.conversation_id = m.conversation_id AND p.user_id = ?
		WHERE m.conversation_id IN ?
			AND p.last_read_at IS NOT NULL
			AND m.created_at > p.last_read_at
			AND m.sender_id <> ?
		GROUP BY m.conversation_id`, userId, convIds, userId).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ConversationId] = row.Cnt
	}
	return result, nil
}

// CountUnreadTotal sums unread across all of the user's conversations
func (r *MessageRepo) CountUnreadTotal(ctx context.Context, userId string, convIds []string) (int64, error) {
	counts, err := r.CountUnreadByConversations(ctx, userId, convIds)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, c := range counts {
		total += c
	}
	return total, nil
}
