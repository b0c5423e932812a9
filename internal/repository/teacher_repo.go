package repository

import (
	"context"
	"errors"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
)

// TeacherRepo is the repository for faculty records
type TeacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo creates a new TeacherRepo
func NewTeacherRepo(db *gorm.DB) *TeacherRepo {
	return &TeacherRepo{db: db}
}

// Create creates a teacher record
func (r *TeacherRepo) Create(ctx context.Context, t *entity.Teacher) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// GetById gets a teacher by Id, nil if absent
func (r *TeacherRepo) GetById(ctx context.Context, id string) (*entity.Teacher, error) {
	var t entity.Teacher
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// List gets all teachers ordered by name
func (r *TeacherRepo) List(ctx context.Context) ([]*entity.Teacher, error) {
	var teachers []*entity.Teacher
	err := r.db.WithContext(ctx).Order("name ASC").Find(&teachers).Error
	if err != nil {
		return nil, err
	}
	return teachers, nil
}

// Update updates teacher fields
func (r *TeacherRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.Teacher{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a teacher record
func (r *TeacherRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Teacher{}).Error
}

// Count counts teacher records
func (r *TeacherRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Teacher{}).Count(&count).Error
	return count, err
}
