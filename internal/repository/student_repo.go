package repository

import (
	"context"
	"errors"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
)

// StudentRepo is the repository for the classmate directory
type StudentRepo struct {
	db *gorm.DB
}

// NewStudentRepo creates a new StudentRepo
func NewStudentRepo(db *gorm.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// Create creates a student record
func (r *StudentRepo) Create(ctx context.Context, s *entity.Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// GetById gets a student by Id, nil if absent
func (r *StudentRepo) GetById(ctx context.Context, id string) (*entity.Student, error) {
	var s entity.Student
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetByIds gets students keyed by Id
func (r *StudentRepo) GetByIds(ctx context.Context, ids []string) (map[string]*entity.Student, error) {
	result := make(map[string]*entity.Student, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var students []*entity.Student
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&students).Error
	if err != nil {
		return nil, err
	}

	for _, s := range students {
		result[s.Id] = s
	}
	return result, nil
}

// List gets all students ordered by name
func (r *StudentRepo) List(ctx context.Context) ([]*entity.Student, error) {
	var students []*entity.Student
	err := r.db.WithContext(ctx).Order("name ASC").Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// Update updates student fields
func (r *StudentRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.Student{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a student record and its group memberships
func (r *StudentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&entity.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Student{}).Error
	})
}

// Count counts student records
func (r *StudentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Student{}).Count(&count).Error
	return count, err
}
