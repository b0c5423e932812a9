package errcode

import "fmt"

// Error represents a business error
type Error struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("errcode: %d, msg: %s", e.Code, e.Msg)
}

// New creates a new error with code and message
func New(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap wraps an error with additional context
func (e *Error) Wrap(err error) *Error {
	if err == nil {
		return e
	}
	return &Error{
		Code: e.Code,
		Msg:  fmt.Sprintf("%s: %v", e.Msg, err),
	}
}

// Common error codes
var (
	// Success
	ErrSuccess = New(0, "success")

	// Common errors (1xxx)
	ErrInvalidParam   = New(1001, "invalid parameter")
	ErrInternalServer = New(1002, "internal server error")
	ErrUnauthorized   = New(1003, "unauthorized")
	ErrForbidden      = New(1004, "forbidden")
	ErrNotFound       = New(1005, "not found")
	ErrNoPermission   = New(1006, "no permission to access this resource")

	// Auth errors (2xxx)
	ErrTokenInvalid  = New(2001, "token invalid")
	ErrTokenExpired  = New(2002, "token expired")
	ErrTokenMissing  = New(2003, "token missing")
	ErrLoginFailed   = New(2004, "login failed")
	ErrUserNotFound  = New(2005, "user not found")
	ErrEmailTaken    = New(2006, "email already registered")
	ErrPasswordWrong = New(2007, "password wrong")
	ErrAdminRequired = New(2008, "admin access required")

	// Conversation errors (3xxx)
	ErrConvNotFound      = New(3001, "conversation not found")
	ErrNotParticipant    = New(3002, "not a conversation participant")
	ErrEmptyGroup        = New(3003, "group needs at least one member")
	ErrGroupNameRequired = New(3004, "group name required")
	ErrSelfConversation  = New(3005, "cannot start a conversation with yourself")

	// Message errors (4xxx)
	ErrMessageNotFound = New(4001, "message not found")
	ErrEmptyMessage    = New(4002, "message needs text or an attachment")
	ErrMediaRequired   = New(4003, "media message needs a media url")
	ErrBadMessageType  = New(4004, "unknown message type")
	ErrSendFailed      = New(4005, "message send failed")

	// WebSocket errors (5xxx)
	ErrConnOverLimit   = New(5001, "connection over max limit")
	ErrConnClosed      = New(5002, "connection closed")
	ErrInvalidProtocol = New(5003, "invalid protocol")
	ErrPushFailed      = New(5004, "push message failed")

	// Content errors (6xxx)
	ErrContentNotFound = New(6001, "content not found")
	ErrBadStatus       = New(6002, "unknown moderation status")
	ErrNameRequired    = New(6003, "name required")
	ErrBadRating       = New(6004, "rating must be between 1 and 5")

	// Media / email errors (7xxx)
	ErrBadBucket         = New(7001, "unknown storage bucket")
	ErrUploadFailed      = New(7002, "upload failed")
	ErrNoRecipients      = New(7003, "no recipients")
	ErrTooManyRecipients = New(7004, "too many recipients (max 100)")
	ErrBadEmailAddress   = New(7005, "invalid email address")
	ErrEmailRelayFailed  = New(7006, "email relay failed")
)
