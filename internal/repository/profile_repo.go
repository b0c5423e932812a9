package repository

import (
	"context"
	"errors"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
)

// ProfileRepo is the repository for profile operations
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo creates a new ProfileRepo
func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Create creates a new profile
func (r *ProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByUserId gets a profile by user Id, nil if absent
func (r *ProfileRepo) GetByUserId(ctx context.Context, userId string) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUserIds gets profiles keyed by user Id
func (r *ProfileRepo) GetByUserIds(ctx context.Context, userIds []string) (map[string]*entity.Profile, error) {
	result := make(map[string]*entity.Profile, len(userIds))
	if len(userIds) == 0 {
		return result, nil
	}

	var profiles []*entity.Profile
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIds).Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		result[p.UserId] = p
	}
	return result, nil
}

// List gets all profiles ordered by display name
func (r *ProfileRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	var profiles []*entity.Profile
	err := r.db.WithContext(ctx).Order("display_name ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Update updates profile fields
func (r *ProfileRepo) Update(ctx context.Context, userId string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.Profile{}).
		Where("user_id = ?", userId).
		Updates(updates).Error
}
