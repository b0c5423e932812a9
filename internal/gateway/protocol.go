package gateway

import (
	"encoding/json"

	"github.com/alumnet/reunion/internal/entity"
)

// WSRequest represents a WebSocket request message
type WSRequest struct {
	ReqIdentifier int32  `json:"req_identifier"` // Request type
	MsgIncr       string `json:"msg_incr"`       // Client message counter/trace Id
	OperationId   string `json:"operation_id"`   // Operation Id
	SendId        string `json:"send_id"`        // Sender user Id
	Data          []byte `json:"data"`           // Business data
}

// WSResponse represents a WebSocket response message
type WSResponse struct {
	ReqIdentifier int32  `json:"req_identifier"` // Request type (echo back)
	MsgIncr       string `json:"msg_incr"`       // Message counter (echo back)
	OperationId   string `json:"operation_id"`   // Operation Id (echo back)
	ErrCode       int    `json:"err_code"`       // Error code, 0 = success
	ErrMsg        string `json:"err_msg"`        // Error message
	Data          []byte `json:"data"`           // Response data
}

// SendMsgReq represents send message request data
type SendMsgReq struct {
	ConversationId string  `json:"conversation_id"`
	Content        *string `json:"content,omitempty"`
	MessageType    string  `json:"message_type"`
	MediaUrl       *string `json:"media_url,omitempty"`
}

// PullMsgReq represents pull messages request data
type PullMsgReq struct {
	ConversationId string `json:"conversation_id"`
	Limit          int    `json:"limit"`
}

// PullMsgResp represents pull messages response data
type PullMsgResp struct {
	Messages []*entity.MessageInfo `json:"messages"`
}

// MarkReadReq represents mark read request data
type MarkReadReq struct {
	ConversationId string `json:"conversation_id"`
}

// GetUnreadResp represents the total unread response data
type GetUnreadResp struct {
	Total int64 `json:"total"`
}

// PushMsgData represents pushed messages grouped by conversation
type PushMsgData struct {
	Msgs map[string][]*entity.MessageInfo `json:"msgs"`
}

// Encode encodes data to JSON bytes
func Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Decode decodes JSON bytes to struct
func Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
