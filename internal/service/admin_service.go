package service

import (
	"context"

	"github.com/alumnet/reunion/internal/repository"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/mbeoliero/kit/log"
)

// AdminService handles the admin console's cross-cutting operations:
// the dashboard summary and role grants.
type AdminService struct {
	roleRepo    *repository.RoleRepo
	userRepo    *repository.UserRepo
	teacherRepo *repository.TeacherRepo
	studentRepo *repository.StudentRepo
	groupRepo   *repository.StudentGroupRepo
	galleryRepo *repository.GalleryRepo
	videoRepo   *repository.VideoRepo
	reviewRepo  *repository.ReviewRepo
}

// NewAdminService creates a new AdminService
func NewAdminService(repos *repository.Repositories) *AdminService {
	return &AdminService{
		roleRepo:    repos.Role,
		userRepo:    repos.User,
		teacherRepo: repos.Teacher,
		studentRepo: repos.Student,
		groupRepo:   repos.StudentGroup,
		galleryRepo: repos.Gallery,
		videoRepo:   repos.Video,
		reviewRepo:  repos.Review,
	}
}

// DashboardStats summarizes the admin console landing page
type DashboardStats struct {
	Teachers       int64 `json:"teachers"`
	Students       int64 `json:"students"`
	Groups         int64 `json:"groups"`
	GalleryItems   int64 `json:"gallery_items"`
	Videos         int64 `json:"videos"`
	PendingVideos  int64 `json:"pending_videos"`
	PendingReviews int64 `json:"pending_reviews"`
}

// Dashboard gathers the content counts shown on the admin landing page
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&stats.Teachers, s.teacherRepo.Count},
		{&stats.Students, s.studentRepo.Count},
		{&stats.Groups, s.groupRepo.Count},
		{&stats.GalleryItems, s.galleryRepo.Count},
		{&stats.Videos, s.videoRepo.Count},
	}
	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			log.CtxError(ctx, "dashboard count failed: %v", err)
			return nil, errcode.ErrInternalServer
		}
		*c.dst = n
	}

	pendingVideos, err := s.videoRepo.CountByStatus(ctx, constant.StatusPending)
	if err != nil {
		log.CtxError(ctx, "count pending videos failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	stats.PendingVideos = pendingVideos

	pendingReviews, err := s.reviewRepo.CountByStatus(ctx, constant.StatusPending)
	if err != nil {
		log.CtxError(ctx, "count pending reviews failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	stats.PendingReviews = pendingReviews

	return stats, nil
}

// GrantRole assigns a role to a user
func (s *AdminService) GrantRole(ctx context.Context, userId, role string) error {
	if role != constant.RoleAdmin && role != constant.RoleTeacher && role != constant.RoleUser {
		return errcode.ErrInvalidParam
	}

	user, err := s.userRepo.GetById(ctx, userId)
	if err != nil || user == nil {
		return errcode.ErrUserNotFound
	}

	if err := s.roleRepo.Assign(ctx, userId, role); err != nil {
		log.CtxError(ctx, "assign role failed: %v", err)
		return errcode.ErrInternalServer
	}
	log.CtxInfo(ctx, "role granted: user_id=%s, role=%s", userId, role)
	return nil
}

// RevokeRole removes a role from a user
func (s *AdminService) RevokeRole(ctx context.Context, userId, role string) error {
	if err := s.roleRepo.Remove(ctx, userId, role); err != nil {
		log.CtxError(ctx, "remove role failed: %v", err)
		return errcode.ErrInternalServer
	}
	log.CtxInfo(ctx, "role revoked: user_id=%s, role=%s", userId, role)
	return nil
}
