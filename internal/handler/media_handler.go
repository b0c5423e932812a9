package handler

import (
	"context"

	"github.com/alumnet/reunion/internal/middleware"
	"github.com/alumnet/reunion/internal/service"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/alumnet/reunion/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/mbeoliero/kit/log"
)

// MediaHandler handles file uploads to object storage
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload accepts one multipart file and stores it in the requested
// bucket. Form fields: bucket, file.
func (h *MediaHandler) Upload(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == "" {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	bucket := c.PostForm("bucket")
	if bucket == "" {
		response.ErrorWithCode(ctx, c, errcode.ErrBadBucket)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.CtxError(ctx, "open upload failed: %v", err)
		response.ErrorWithCode(ctx, c, errcode.ErrUploadFailed)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.mediaService.Upload(ctx, userId, bucket, fileHeader.Filename, contentType, file)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
