package repository

import (
	"context"
	"errors"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StudentGroupRepo is the repository for student groups and rosters
type StudentGroupRepo struct {
	db *gorm.DB
}

// NewStudentGroupRepo creates a new StudentGroupRepo
func NewStudentGroupRepo(db *gorm.DB) *StudentGroupRepo {
	return &StudentGroupRepo{db: db}
}

// Create creates a group with its initial member rows
func (r *StudentGroupRepo) Create(ctx context.Context, group *entity.StudentGroup, studentIds []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return addMembersTx(tx, group.Id, studentIds)
	})
}

// GetById gets a group by Id, nil if absent
func (r *StudentGroupRepo) GetById(ctx context.Context, id string) (*entity.StudentGroup, error) {
	var g entity.StudentGroup
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// List gets all groups ordered by name
func (r *StudentGroupRepo) List(ctx context.Context) ([]*entity.StudentGroup, error) {
	var groups []*entity.StudentGroup
	err := r.db.WithContext(ctx).Order("name ASC").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// GetMemberIdsByGroupIds gets member student ids grouped by group Id
func (r *StudentGroupRepo) GetMemberIdsByGroupIds(ctx context.Context, groupIds []string) (map[string][]string, error) {
	result := make(map[string][]string, len(groupIds))
	if len(groupIds) == 0 {
		return result, nil
	}

	var rows []*entity.GroupMember
	err := r.db.WithContext(ctx).Where("group_id IN ?", groupIds).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, m := range rows {
		result[m.GroupId] = append(result[m.GroupId], m.StudentId)
	}
	return result, nil
}

// Update updates group fields
func (r *StudentGroupRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.StudentGroup{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ReplaceMembers swaps the roster of a group atomically
func (r *StudentGroupRepo) ReplaceMembers(ctx context.Context, groupId string, studentIds []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupId).Delete(&entity.GroupMember{}).Error; err != nil {
			return err
		}
		return addMembersTx(tx, groupId, studentIds)
	})
}

// Delete removes a group and its member rows
func (r *StudentGroupRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&entity.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.StudentGroup{}).Error
	})
}

// Count counts group records
func (r *StudentGroupRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.StudentGroup{}).Count(&count).Error
	return count, err
}

func addMembersTx(tx *gorm.DB, groupId string, studentIds []string) error {
	if len(studentIds) == 0 {
		return nil
	}
	rows := make([]*entity.GroupMember, 0, len(studentIds))
	for _, sid := range studentIds {
		rows = append(rows, &entity.GroupMember{
			GroupId:   groupId,
			StudentId: sid,
		})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
