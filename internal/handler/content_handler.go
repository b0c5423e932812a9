package handler

import (
	"context"

	"github.com/alumnet/reunion/internal/middleware"
	"github.com/alumnet/reunion/internal/service"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/alumnet/reunion/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
)

// ContentHandler serves the public site content and logged-in
// submissions. Public reads only ever expose approved rows.
type ContentHandler struct {
	contentService    *service.ContentService
	submissionService *service.SubmissionService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contentService *service.ContentService, submissionService *service.SubmissionService) *ContentHandler {
	return &ContentHandler{
		contentService:    contentService,
		submissionService: submissionService,
	}
}

// ListTeachers gets the faculty section
func (h *ContentHandler) ListTeachers(ctx context.Context, c *app.RequestContext) {
	teachers, err := h.contentService.ListTeachers(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, teachers)
}

// ListStudents gets the classmate directory
func (h *ContentHandler) ListStudents(ctx context.Context, c *app.RequestContext) {
	students, err := h.contentService.ListStudents(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, students)
}

// ListGroups gets student groups with rosters
func (h *ContentHandler) ListGroups(ctx context.Context, c *app.RequestContext) {
	groups, err := h.contentService.ListGroups(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, groups)
}

// ListGallery gets approved gallery photos
func (h *ContentHandler) ListGallery(ctx context.Context, c *app.RequestContext) {
	items, err := h.submissionService.ListApprovedGallery(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, items)
}

// ListVideos gets approved videos
func (h *ContentHandler) ListVideos(ctx context.Context, c *app.RequestContext) {
	videos, err := h.submissionService.ListApprovedVideos(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, videos)
}

// RecordVideoView bumps an approved video's play counter
func (h *ContentHandler) RecordVideoView(ctx context.Context, c *app.RequestContext) {
	id := c.Param("video_id")
	if id == "" {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.submissionService.RecordVideoView(ctx, id); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// ListReviews gets approved guestbook entries
func (h *ContentHandler) ListReviews(ctx context.Context, c *app.RequestContext) {
	reviews, err := h.submissionService.ListApprovedReviews(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, reviews)
}

// SubmitReview accepts a guestbook entry; works for guests and for
// logged-in users, whose id is attached when present.
func (h *ContentHandler) SubmitReview(ctx context.Context, c *app.RequestContext) {
	var req service.ReviewRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	var userId *string
	if id := middleware.GetUserId(c); id != "" {
		userId = &id
	}

	review, err := h.submissionService.SubmitReview(ctx, userId, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, review)
}

// SubmitVideo accepts a video submission from a logged-in user
func (h *ContentHandler) SubmitVideo(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == "" {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	var req service.VideoRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	video, err := h.submissionService.SubmitVideo(ctx, userId, middleware.GetRole(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, video)
}

// SubmitGallery accepts a gallery photo from a logged-in user
func (h *ContentHandler) SubmitGallery(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == "" {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	var req service.GalleryRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	item, err := h.submissionService.SubmitGallery(ctx, userId, middleware.GetRole(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, item)
}

// GetReunionInfo gets the reunion event record
func (h *ContentHandler) GetReunionInfo(ctx context.Context, c *app.RequestContext) {
	info, err := h.contentService.GetReunionInfo(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, info)
}
