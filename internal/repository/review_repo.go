package repository

import (
	"context"
	"errors"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
)

// ReviewRepo is the repository for guestbook messages
type ReviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo creates a new ReviewRepo
func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create creates a guestbook entry
func (r *ReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetById gets a guestbook entry by Id, nil if absent
func (r *ReviewRepo) GetById(ctx context.Context, id string) (*entity.Review, error) {
	var review entity.Review
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// List gets all guestbook entries, newest first
func (r *ReviewRepo) List(ctx context.Context) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByStatus gets guestbook entries with the given status, newest first
func (r *ReviewRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// SetStatus records a moderation decision
func (r *ReviewRepo) SetStatus(ctx context.Context, id, status, reviewerId string, reviewedAt int64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerId,
			"reviewed_at": reviewedAt,
		}).Error
}

// Delete removes a guestbook entry
func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Review{}).Error
}

// CountByStatus counts guestbook entries with the given status
func (r *ReviewRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
