package handler

import (
	"context"

	"github.com/alumnet/reunion/internal/middleware"
	"github.com/alumnet/reunion/internal/service"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/alumnet/reunion/pkg/response"
	"github.com/cloudwego/hertz/pkg/app"
)

// AdminHandler handles the admin console: content CRUD, moderation,
// the dashboard, role grants and outbound email. The router gates the
// whole group behind RequireRole.
type AdminHandler struct {
	contentService    *service.ContentService
	submissionService *service.SubmissionService
	adminService      *service.AdminService
	emailService      *service.EmailService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(contentService *service.ContentService, submissionService *service.SubmissionService,
	adminService *service.AdminService, emailService *service.EmailService) *AdminHandler {
	return &AdminHandler{
		contentService:    contentService,
		submissionService: submissionService,
		adminService:      adminService,
		emailService:      emailService,
	}
}

// Dashboard gets the admin landing page counts
func (h *AdminHandler) Dashboard(ctx context.Context, c *app.RequestContext) {
	stats, err := h.adminService.Dashboard(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, stats)
}

// CreateTeacher creates a faculty record
func (h *AdminHandler) CreateTeacher(ctx context.Context, c *app.RequestContext) {
	var req service.TeacherRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	t, err := h.contentService.CreateTeacher(ctx, middleware.GetUserId(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, t)
}

// UpdateTeacher updates a faculty record
func (h *AdminHandler) UpdateTeacher(ctx context.Context, c *app.RequestContext) {
	var req service.TeacherRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	t, err := h.contentService.UpdateTeacher(ctx, c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, t)
}

// DeleteTeacher removes a faculty record
func (h *AdminHandler) DeleteTeacher(ctx context.Context, c *app.RequestContext) {
	if err := h.contentService.DeleteTeacher(ctx, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// CreateStudent creates a directory record
func (h *AdminHandler) CreateStudent(ctx context.Context, c *app.RequestContext) {
	var req service.StudentRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	st, err := h.contentService.CreateStudent(ctx, middleware.GetUserId(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, st)
}

// UpdateStudent updates a directory record
func (h *AdminHandler) UpdateStudent(ctx context.Context, c *app.RequestContext) {
	var req service.StudentRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	st, err := h.contentService.UpdateStudent(ctx, c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, st)
}

// DeleteStudent removes a directory record
func (h *AdminHandler) DeleteStudent(ctx context.Context, c *app.RequestContext) {
	if err := h.contentService.DeleteStudent(ctx, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// CreateGroup creates a student group
func (h *AdminHandler) CreateGroup(ctx context.Context, c *app.RequestContext) {
	var req service.GroupRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	g, err := h.contentService.CreateGroup(ctx, middleware.GetUserId(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, g)
}

// UpdateGroup updates a student group and optionally its roster
func (h *AdminHandler) UpdateGroup(ctx context.Context, c *app.RequestContext) {
	var req service.GroupRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	g, err := h.contentService.UpdateGroup(ctx, c.Param("id"), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, g)
}

// DeleteGroup removes a student group
func (h *AdminHandler) DeleteGroup(ctx context.Context, c *app.RequestContext) {
	if err := h.contentService.DeleteGroup(ctx, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// ListGallery gets every gallery item including pending ones
func (h *AdminHandler) ListGallery(ctx context.Context, c *app.RequestContext) {
	items, err := h.submissionService.ListGalleryForReview(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, items)
}

// ModerationRequest represents a moderation decision
type ModerationRequest struct {
	Status string `json:"status"`
}

// ModerateGallery approves or rejects a gallery item
func (h *AdminHandler) ModerateGallery(ctx context.Context, c *app.RequestContext) {
	var req ModerationRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.submissionService.ModerateGallery(ctx, middleware.GetUserId(c), c.Param("id"), req.Status); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// DeleteGallery removes a gallery item
func (h *AdminHandler) DeleteGallery(ctx context.Context, c *app.RequestContext) {
	if err := h.submissionService.DeleteGallery(ctx, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// ListVideos gets every video including pending ones
func (h *AdminHandler) ListVideos(ctx context.Context, c *app.RequestContext) {
	videos, err := h.submissionService.ListVideosForReview(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, videos)
}

// ModerateVideo approves or rejects a video
func (h *AdminHandler) ModerateVideo(ctx context.Context, c *app.RequestContext) {
	var req ModerationRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.submissionService.ModerateVideo(ctx, middleware.GetUserId(c), c.Param("id"), req.Status); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// DeleteVideo removes a video
func (h *AdminHandler) DeleteVideo(ctx context.Context, c *app.RequestContext) {
	if err := h.submissionService.DeleteVideo(ctx, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// ListReviews gets every guestbook entry including pending ones
func (h *AdminHandler) ListReviews(ctx context.Context, c *app.RequestContext) {
	reviews, err := h.submissionService.ListReviewsForReview(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, reviews)
}

// ModerateReview approves or rejects a guestbook entry
func (h *AdminHandler) ModerateReview(ctx context.Context, c *app.RequestContext) {
	var req ModerationRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.submissionService.ModerateReview(ctx, middleware.GetUserId(c), c.Param("id"), req.Status); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// DeleteReview removes a guestbook entry
func (h *AdminHandler) DeleteReview(ctx context.Context, c *app.RequestContext) {
	if err := h.submissionService.DeleteReview(ctx, c.Param("id")); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// SaveReunionInfo upserts the reunion record
func (h *AdminHandler) SaveReunionInfo(ctx context.Context, c *app.RequestContext) {
	var req service.ReunionRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	info, err := h.contentService.SaveReunionInfo(ctx, middleware.GetUserId(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, info)
}

// RoleRequest represents a role grant or revoke
type RoleRequest struct {
	UserId string `json:"user_id"`
	Role   string `json:"role"`
}

// GrantRole assigns a role to a user
func (h *AdminHandler) GrantRole(ctx context.Context, c *app.RequestContext) {
	var req RoleRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.adminService.GrantRole(ctx, req.UserId, req.Role); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// RevokeRole removes a role from a user
func (h *AdminHandler) RevokeRole(ctx context.Context, c *app.RequestContext) {
	var req RoleRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.adminService.RevokeRole(ctx, req.UserId, req.Role); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// SendEmail relays an admin-composed email
func (h *AdminHandler) SendEmail(ctx context.Context, c *app.RequestContext) {
	var req service.SendEmailRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	result, err := h.emailService.Send(ctx, middleware.GetUserId(c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, result)
}
