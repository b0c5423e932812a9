package entity

// Message represents a chat message. Messages are immutable once
// created; there is no edit or delete path. Ids come from the
// sonyflake generator, so id order follows creation order.
type Message struct {
	Id             int64  `json:"id" gorm:"column:id;primaryKey"`
	ConversationId string `json:"conversation_id" gorm:"column:conversation_id;index"`
	SenderId       string `json:"sender_id" gorm:"column:sender_id"`
	// Content is nil for pure-media messages.
	Content     *string `json:"content" gorm:"column:content"`
	MessageType string  `json:"message_type" gorm:"column:message_type"`
	// MediaUrl is required for image/video messages and nil for text.
	MediaUrl  *string `json:"media_url" gorm:"column:media_url"`
	CreatedAt int64   `json:"created_at" gorm:"column:created_at"`
}

// TableName returns the table name for Message
func (Message) TableName() string {
	return "chat_messages"
}

// MessageInfo represents a message enriched with the sender's current
// profile (not a historical snapshot).
type MessageInfo struct {
	Id             int64   `json:"id"`
	ConversationId string  `json:"conversation_id"`
	SenderId       string  `json:"sender_id"`
	SenderName     string  `json:"sender_name"`
	SenderAvatar   *string `json:"sender_avatar"`
	Content        *string `json:"content"`
	MessageType    string  `json:"message_type"`
	MediaUrl       *string `json:"media_url"`
	CreatedAt      int64   `json:"created_at"`
}

// ToMessageInfo converts Message to MessageInfo with sender profile fields
func (m *Message) ToMessageInfo(senderName string, senderAvatar *string) *MessageInfo {
	return &MessageInfo{
		Id:             m.Id,
		ConversationId: m.ConversationId,
		SenderId:       m.SenderId,
		SenderName:     senderName,
		SenderAvatar:   senderAvatar,
		Content:        m.Content,
		MessageType:    m.MessageType,
		MediaUrl:       m.MediaUrl,
		CreatedAt:      m.CreatedAt,
	}
}
