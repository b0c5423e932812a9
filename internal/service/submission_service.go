package service

import (
	"context"
	"strings"

	"github.com/alumnet/reunion/internal/entity"
	"github.com/alumnet/reunion/internal/repository"
	"github.com/alumnet/reunion/pkg/constant"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/google/uuid"
	"github.com/mbeoliero/kit/log"
)

// SubmissionService handles user-submitted content that flows through
// moderation: gallery photos, videos and guestbook messages. Public
// listings only ever expose approved rows.
type SubmissionService struct {
	galleryRepo *repository.GalleryRepo
	videoRepo   *repository.VideoRepo
	reviewRepo  *repository.ReviewRepo
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(repos *repository.Repositories) *SubmissionService {
	return &SubmissionService{
		galleryRepo: repos.Gallery,
		videoRepo:   repos.Video,
		reviewRepo:  repos.Review,
	}
}

// GalleryRequest represents a gallery submission or admin edit
type GalleryRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	PhotoUrl    string  `json:"photo_url"`
}

// ListApprovedGallery gets approved gallery items for the public page
func (s *SubmissionService) ListApprovedGallery(ctx context.Context) ([]*entity.GalleryItem, error) {
	items, err := s.galleryRepo.ListByStatus(ctx, constant.StatusApproved)
	if err != nil {
		log.CtxError(ctx, "list gallery failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return items, nil
}

// ListGalleryForReview gets every gallery item for the admin console
func (s *SubmissionService) ListGalleryForReview(ctx context.Context) ([]*entity.GalleryItem, error) {
	items, err := s.galleryRepo.List(ctx)
	if err != nil {
		log.CtxError(ctx, "list gallery failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return items, nil
}

// SubmitGallery creates a gallery item. Admin submissions are approved
// immediately; everyone else lands in the moderation queue.
func (s *SubmissionService) SubmitGallery(ctx context.Context, userId, role string, req *GalleryRequest) (*entity.GalleryItem, error) {
	if strings.TrimSpace(req.PhotoUrl) == "" {
		return nil, errcode.ErrInvalidParam
	}

	status := constant.StatusPending
	if role == constant.RoleAdmin {
		status = constant.StatusApproved
	}

	item := &entity.GalleryItem{
		Id:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		PhotoUrl:    req.PhotoUrl,
		Status:      status,
		UploadedBy:  &userId,
	}
	if err := s.galleryRepo.Create(ctx, item); err != nil {
		log.CtxError(ctx, "create gallery item failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return item, nil
}

// ModerateGallery records a moderation decision on a gallery item
func (s *SubmissionService) ModerateGallery(ctx context.Context, reviewerId, id, status string) error {
	if !constant.ValidModerationStatus(status) {
		return errcode.ErrBadStatus
	}
	item, err := s.galleryRepo.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get gallery item failed: %v", err)
		return errcode.ErrInternalServer
	}
	if item == nil {
		return errcode.ErrContentNotFound
	}
	if err := s.galleryRepo.SetStatus(ctx, id, status, reviewerId, entity.NowUnixMilli()); err != nil {
		log.CtxError(ctx, "moderate gallery item failed: %v", err)
		return errcode.ErrInternalServer
	}
	log.CtxInfo(ctx, "gallery moderated: id=%s, status=%s, by=%s", id, status, reviewerId)
	return nil
}

// DeleteGallery removes a gallery item
func (s *SubmissionService) DeleteGallery(ctx context.Context, id string) error {
	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "delete gallery item failed: %v", err)
		return errcode.ErrInternalServer
	}
	return nil
}

// VideoRequest represents a video submission or admin edit
type VideoRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	VideoUrl        string  `json:"video_url"`
	ThumbnailUrl    *string `json:"thumbnail_url,omitempty"`
	UploaderName    string  `json:"uploader_name"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
}

// ListApprovedVideos gets approved videos for the public page
func (s *SubmissionService) ListApprovedVideos(ctx context.Context) ([]*entity.Video, error) {
	videos, err := s.videoRepo.ListByStatus(ctx, constant.StatusApproved)
	if err != nil {
		log.CtxError(ctx, "list videos failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return videos, nil
}

// ListVideosForReview gets every video for the admin console
func (s *SubmissionService) ListVideosForReview(ctx context.Context) ([]*entity.Video, error) {
	videos, err := s.videoRepo.List(ctx)
	if err != nil {
		log.CtxError(ctx, "list videos failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return videos, nil
}

// SubmitVideo creates a video row in the moderation queue; admin
// submissions skip the queue.
func (s *SubmissionService) SubmitVideo(ctx context.Context, userId, role string, req *VideoRequest) (*entity.Video, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.VideoUrl) == "" {
		return nil, errcode.ErrInvalidParam
	}

	status := constant.StatusPending
	if role == constant.RoleAdmin {
		status = constant.StatusApproved
	}

	v := &entity.Video{
		Id:              uuid.New().String(),
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		VideoUrl:        req.VideoUrl,
		ThumbnailUrl:    req.ThumbnailUrl,
		UploaderName:    req.UploaderName,
		UploadedBy:      &userId,
		DurationSeconds: req.DurationSeconds,
		Status:          status,
	}
	if err := s.videoRepo.Create(ctx, v); err != nil {
		log.CtxError(ctx, "create video failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return v, nil
}

// ModerateVideo records a moderation decision on a video
func (s *SubmissionService) ModerateVideo(ctx context.Context, reviewerId, id, status string) error {
	if !constant.ValidModerationStatus(status) {
		return errcode.ErrBadStatus
	}
	v, err := s.videoRepo.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get video failed: %v", err)
		return errcode.ErrInternalServer
	}
	if v == nil {
		return errcode.ErrContentNotFound
	}
	if err := s.videoRepo.SetStatus(ctx, id, status, reviewerId, entity.NowUnixMilli()); err != nil {
		log.CtxError(ctx, "moderate video failed: %v", err)
		return errcode.ErrInternalServer
	}
	log.CtxInfo(ctx, "video moderated: id=%s, status=%s, by=%s", id, status, reviewerId)
	return nil
}

// RecordVideoView bumps the play counter of an approved video
func (s *SubmissionService) RecordVideoView(ctx context.Context, id string) error {
	v, err := s.videoRepo.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get video failed: %v", err)
		return errcode.ErrInternalServer
	}
	if v == nil || v.Status != constant.StatusApproved {
		return errcode.ErrContentNotFound
	}
	if err := s.videoRepo.IncrementViewCount(ctx, id); err != nil {
		log.CtxWarn(ctx, "increment view count failed: %v", err)
	}
	return nil
}

// DeleteVideo removes a video row
func (s *SubmissionService) DeleteVideo(ctx context.Context, id string) error {
	if err := s.videoRepo.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "delete video failed: %v", err)
		return errcode.ErrInternalServer
	}
	return nil
}

// ReviewRequest represents a guestbook submission
type ReviewRequest struct {
	AuthorName  string  `json:"author_name"`
	AuthorEmail *string `json:"author_email,omitempty"`
	Message     string  `json:"message"`
	Rating      *int    `json:"rating,omitempty"`
}

// ListApprovedReviews gets approved guestbook entries for the public page
func (s *SubmissionService) ListApprovedReviews(ctx context.Context) ([]*entity.Review, error) {
	reviews, err := s.reviewRepo.ListByStatus(ctx, constant.StatusApproved)
	if err != nil {
		log.CtxError(ctx, "list reviews failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return reviews, nil
}

// ListReviewsForReview gets every guestbook entry for the admin console
func (s *SubmissionService) ListReviewsForReview(ctx context.Context) ([]*entity.Review, error) {
	reviews, err := s.reviewRepo.List(ctx)
	if err != nil {
		log.CtxError(ctx, "list reviews failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return reviews, nil
}

// SubmitReview creates a guestbook entry in the moderation queue.
// UserId is set when the author is logged in, nil for guests.
func (s *SubmissionService) SubmitReview(ctx context.Context, userId *string, req *ReviewRequest) (*entity.Review, error) {
	if strings.TrimSpace(req.AuthorName) == "" {
		return nil, errcode.ErrNameRequired
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, errcode.ErrInvalidParam
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, errcode.ErrBadRating
	}

	review := &entity.Review{
		Id:          uuid.New().String(),
		AuthorName:  strings.TrimSpace(req.AuthorName),
		AuthorEmail: req.AuthorEmail,
		Message:     strings.TrimSpace(req.Message),
		Rating:      req.Rating,
		Status:      constant.StatusPending,
		UserId:      userId,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		log.CtxError(ctx, "create review failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return review, nil
}

// ModerateReview records a moderation decision on a guestbook entry
func (s *SubmissionService) ModerateReview(ctx context.Context, reviewerId, id, status string) error {
	if !constant.ValidModerationStatus(status) {
		return errcode.ErrBadStatus
	}
	review, err := s.reviewRepo.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get review failed: %v", err)
		return errcode.ErrInternalServer
	}
	if review == nil {
		return errcode.ErrContentNotFound
	}
	if err := s.reviewRepo.SetStatus(ctx, id, status, reviewerId, entity.NowUnixMilli()); err != nil {
		log.CtxError(ctx, "moderate review failed: %v", err)
		return errcode.ErrInternalServer
	}
	log.CtxInfo(ctx, "review moderated: id=%s, status=%s, by=%s", id, status, reviewerId)
	return nil
}

// DeleteReview removes a guestbook entry
func (s *SubmissionService) DeleteReview(ctx context.Context, id string) error {
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "delete review failed: %v", err)
		return errcode.ErrInternalServer
	}
	return nil
}
