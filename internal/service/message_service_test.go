package service

import (
	"testing"

	"github.com/alumnet/reunion/pkg/constant"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		req     *SendMessageRequest
		wantErr *errcode.Error
	}{
		{
			name: "text ok",
			req: &SendMessageRequest{
				MessageType: constant.MessageTypeText,
				Content:     strPtr("hello"),
			},
		},
		{
			name: "text missing content",
			req: &SendMessageRequest{
				MessageType: constant.MessageTypeText,
			},
			wantErr: errcode.ErrEmptyMessage,
		},
		{
			name: "text blank content",
			req: &SendMessageRequest{
				MessageType: constant.MessageTypeText,
				Content:     strPtr("   "),
			},
			wantErr: errcode.ErrEmptyMessage,
		},
		{
			name: "text with media url rejected",
			req: &SendMessageRequest{
				MessageType: constant.MessageTypeText,
				Content:     strPtr("hello"),
				MediaUrl:    strPtr("https://cdn.example.com/x.png"),
			},
			wantErr: errcode.ErrInvalidParam,
		},
		{
			name: "image needs media url",
			req: &SendMessageRequest{
				MessageType: constant.MessageTypeImage,
			},
			wantErr: errcode.ErrMediaRequired,
		},
		{
			name: "image ok without caption",
			req: &SendMessageRequest{
				MessageType: constant.MessageTypeImage,
				MediaUrl:    strPtr("https://cdn.example.com/x.png"),
			},
		},
		{
			name: "video ok with caption",
			req: &SendMessageRequest{
				MessageType: constant.MessageTypeVideo,
				Content:     strPtr("look at this"),
				MediaUrl:    strPtr("https://cdn.example.com/x.mp4"),
			},
		},
		{
			name: "unknown type",
			req: &SendMessageRequest{
				MessageType: "sticker",
				Content:     strPtr("hi"),
			},
			wantErr: errcode.ErrBadMessageType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMessage(tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantErr, err)
			}
		})
	}
}
