package repository

import (
	"context"
	"errors"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
)

// VideoRepo is the repository for shared videos
type VideoRepo struct {
	db *gorm.DB
}

// NewVideoRepo creates a new VideoRepo
func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db: db}
}

// Create creates a video record
func (r *VideoRepo) Create(ctx context.Context, v *entity.Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// GetById gets a video by Id, nil if absent
func (r *VideoRepo) GetById(ctx context.Context, id string) (*entity.Video, error) {
	var v entity.Video
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// List gets all videos, newest first
func (r *VideoRepo) List(ctx context.Context) ([]*entity.Video, error) {
	var videos []*entity.Video
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// ListByStatus gets videos with the given moderation status, newest first
func (r *VideoRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Video, error) {
	var videos []*entity.Video
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// SetStatus records a moderation decision
func (r *VideoRepo) SetStatus(ctx context.Context, id, status, reviewerId string, reviewedAt int64) error {
	return r.db.WithContext(ctx).
		Model(&entity.Video{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerId,
			"reviewed_at": reviewedAt,
		}).Error
}

// IncrementViewCount bumps the play counter atomically
func (r *VideoRepo) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Video{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// Delete removes a video record
func (r *VideoRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Video{}).Error
}

// Count counts video records
func (r *VideoRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Video{}).Count(&count).Error
	return count, err
}

// CountByStatus counts videos with the given status
func (r *VideoRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Video{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
