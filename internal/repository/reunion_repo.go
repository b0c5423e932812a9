package repository

import (
	"context"
	"errors"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReunionRepo is the repository for the singleton reunion record
type ReunionRepo struct {
	db *gorm.DB
}

// NewReunionRepo creates a new ReunionRepo
func NewReunionRepo(db *gorm.DB) *ReunionRepo {
	return &ReunionRepo{db: db}
}

// Get gets the reunion record, nil if never written
func (r *ReunionRepo) Get(ctx context.Context) (*entity.ReunionInfo, error) {
	var info entity.ReunionInfo
	err := r.db.WithContext(ctx).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// Upsert writes the reunion record, creating it on first save
func (r *ReunionRepo) Upsert(ctx context.Context, info *entity.ReunionInfo) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(info).Error
}
