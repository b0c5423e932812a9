package entity

// Conversation represents a chat conversation
type Conversation struct {
	Id   string `json:"id" gorm:"column:id;primaryKey"`
	Type string `json:"type" gorm:"column:type"`
	// Name is set for group conversations only; direct conversations
	// render the other participant's display name instead.
	Name string `json:"name,omitempty" gorm:"column:name"`
	// DirectKey is the sorted participant pair for direct conversations
	// (see GenDirectKey); nil for groups. The unique index enforces at
	// most one direct conversation per unordered user pair.
	DirectKey *string `json:"-" gorm:"column:direct_key;uniqueIndex"`
	CreatedBy string  `json:"created_by" gorm:"column:created_by"`
	CreatedAt int64   `json:"created_at" gorm:"column:created_at"`
	UpdatedAt int64   `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for Conversation
func (Conversation) TableName() string {
	return "chat_conversations"
}

// Participant represents a (conversation, user) membership
type Participant struct {
	Id             int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ConversationId string `json:"conversation_id" gorm:"column:conversation_id;uniqueIndex:idx_conv_user"`
	UserId         string `json:"user_id" gorm:"column:user_id;uniqueIndex:idx_conv_user"`
	JoinedAt       int64  `json:"joined_at" gorm:"column:joined_at"`
	// LastReadAt is the read watermark for unread counting; nil means
	// the participant has never opened the conversation.
	LastReadAt *int64 `json:"last_read_at" gorm:"column:last_read_at"`
}

// TableName returns the table name for Participant
func (Participant) TableName() string {
	return "chat_participants"
}

// ParticipantInfo represents a participant enriched with profile and presence
type ParticipantInfo struct {
	UserId      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	AvatarUrl   *string `json:"avatar_url"`
	LastReadAt  *int64  `json:"last_read_at"`
	IsOnline    bool    `json:"is_online"`
}

// LastMessageInfo represents the latest message summary in the directory
type LastMessageInfo struct {
	Content     *string `json:"content"`
	MessageType string  `json:"message_type"`
	SenderId    string  `json:"sender_id"`
	CreatedAt   int64   `json:"created_at"`
	Preview     string  `json:"preview"`
	TimeLabel   string  `json:"time_label"`
}

// ConversationInfo represents a directory entry for API responses
type ConversationInfo struct {
	Id           string             `json:"id"`
	Type         string             `json:"type"`
	Name         string             `json:"name,omitempty"`
	CreatedBy    string             `json:"created_by"`
	UpdatedAt    int64              `json:"updated_at"`
	Participants []*ParticipantInfo `json:"participants"`
	LastMessage  *LastMessageInfo   `json:"last_message,omitempty"`
	UnreadCount  int64              `json:"unread_count"`
}
