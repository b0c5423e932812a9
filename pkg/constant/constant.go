package constant

import "time"

// Conversation types
const (
	ConversationDirect = "direct"
	ConversationGroup  = "group"
)

// Message types
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeVideo = "video"
)

// ValidMessageType reports whether t is a known message type.
func ValidMessageType(t string) bool {
	return t == MessageTypeText || t == MessageTypeImage || t == MessageTypeVideo
}

// Application roles, in ascending priority.
const (
	RoleUser    = "user"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Moderation status for user-submitted content (reviews, videos, gallery)
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidModerationStatus reports whether s is a known moderation status.
func ValidModerationStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Presence timings. Clients heartbeat every HeartbeatInterval; a presence
// row whose last_seen is older than PresenceStaleAfter reports offline
// even if the going-offline beacon never fired.
const (
	HeartbeatInterval  = 30 * time.Second
	PresenceStaleAfter = 2 * HeartbeatInterval
)

// Storage buckets
const (
	BucketChatMedia   = "chat-media"
	BucketGallery     = "gallery"
	BucketTeachers    = "teachers"
	BucketStudents    = "students"
	BucketGroupPhotos = "group-photos"
	BucketVideos      = "videos"
)

// UploadBuckets lists every bucket the upload endpoint accepts.
var UploadBuckets = []string{
	BucketChatMedia,
	BucketGallery,
	BucketTeachers,
	BucketStudents,
	BucketGroupPhotos,
	BucketVideos,
}

// ValidBucket reports whether name is an accepted upload bucket.
func ValidBucket(name string) bool {
	for _, b := range UploadBuckets {
		if b == name {
			return true
		}
	}
	return false
}

// MaxEmailRecipients caps a single outbound email send.
const MaxEmailRecipients = 100

// DirectKeyPrefix prefixes the deterministic key of a direct conversation.
const DirectKeyPrefix = "di_"

// Redis key patterns (without prefix, use RedisKey() to get full key)
const (
	redisKeyToken  = "token:%s"  // token:{user_id}
	redisKeyOnline = "online:%s" // online:{user_id}
)

// redisKeyPrefix is the global prefix for all Redis keys
var redisKeyPrefix = "reunion:"

// InitRedisKeyPrefix initializes the Redis key prefix from config
func InitRedisKeyPrefix(prefix string) {
	if prefix != "" {
		redisKeyPrefix = prefix
	}
}

// GetRedisKeyPrefix returns the current Redis key prefix
func GetRedisKeyPrefix() string {
	return redisKeyPrefix
}

// Redis key getters with prefix
func RedisKeyToken() string  { return redisKeyPrefix + redisKeyToken }
func RedisKeyOnline() string { return redisKeyPrefix + redisKeyOnline }
