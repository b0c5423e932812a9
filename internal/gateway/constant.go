package gateway

import "time"

// WebSocket protocol request identifiers
const (
	WSSendMsg   = 1001 // Send a chat message
	WSPullMsg   = 1002 // Pull a conversation's messages
	WSMarkRead  = 1003 // Move the read watermark
	WSGetUnread = 1004 // Get total unread count

	// Response identifiers
	WSPushMsg       = 2001 // Server push message
	WSKickOnlineMsg = 2002 // Kick user offline
)

// Connection defaults, used when the config leaves them unset
const (
	// WriteWait is time allowed to write a message to the peer
	WriteWait = 10 * time.Second

	// PongWait is time allowed to read the next pong message from the peer
	PongWait = 30 * time.Second

	// PingPeriod is period between pings. Must be less than PongWait
	PingPeriod = (PongWait * 9) / 10

	// MaxMessageSize is maximum message size allowed from peer
	MaxMessageSize = 51200

	// WriteChannelSize is the per-connection outbound queue length
	WriteChannelSize = 256
)

// Query parameter keys
const (
	QueryToken  = "token"
	QuerySendId = "send_id"
)
