package repository

import (
	"context"
	"errors"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
)

// GalleryRepo is the repository for gallery photos
type GalleryRepo struct {
	db *gorm.DB
}

// NewGalleryRepo creates a new GalleryRepo
func NewGalleryRepo(db *gorm.DB) *GalleryRepo {
	return &GalleryRepo{db: db}
}

// Create creates a gallery item
func (r *GalleryRepo) Create(ctx context.Context, item *entity.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetById gets a gallery item by Id, nil if absent
func (r *GalleryRepo) GetById(ctx context.Context, id string) (*entity.GalleryItem, error) {
	var item entity.GalleryItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List gets all gallery items, newest first
func (r *GalleryRepo) List(ctx context.Context) ([]*entity.GalleryItem, error) {
	var items []*entity.GalleryItem
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListByStatus gets gallery items with the given moderation status, newest first
func (r *GalleryRepo) ListByStatus(ctx context.Context, status string) ([]*entity.GalleryItem, error) {
	var items []*entity.GalleryItem
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// SetStatus records a moderation decision
func (r *GalleryRepo) SetStatus(ctx context.Context, id, status, reviewerId string, reviewedAt int64) error {
	return r.db.WithContext(ctx).
		Model(&entity.GalleryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerId,
			"reviewed_at": reviewedAt,
		}).Error
}

// Delete removes a gallery item
func (r *GalleryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.GalleryItem{}).Error
}

// Count counts gallery items
func (r *GalleryRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.GalleryItem{}).Count(&count).Error
	return count, err
}
