package repository

import (
	"context"

	"github.com/alumnet/reunion/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoleRepo is the repository for role assignments
type RoleRepo struct {
	db *gorm.DB
}

// NewRoleRepo creates a new RoleRepo
func NewRoleRepo(db *gorm.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

// GetRoles gets all role names assigned to a user
func (r *RoleRepo) GetRoles(ctx context.Context, userId string) ([]string, error) {
	var roles []string
	err := r.db.WithContext(ctx).
		Model(&entity.UserRole{}).
		Where("user_id = ?", userId).
		Pluck("role", &roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// Assign adds a role row for a user; re-assigning is a no-op
func (r *RoleRepo) Assign(ctx context.Context, userId, role string) error {
	row := &entity.UserRole{
		UserId: userId,
		Role:   role,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
}

// Remove removes a role row from a user
func (r *RoleRepo) Remove(ctx context.Context, userId, role string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userId, role).
		Delete(&entity.UserRole{}).Error
}

// ListByRole gets all user ids holding a role
func (r *RoleRepo) ListByRole(ctx context.Context, role string) ([]string, error) {
	var userIds []string
	err := r.db.WithContext(ctx).
		Model(&entity.UserRole{}).
		Where("role = ?", role).
		Pluck("user_id", &userIds).Error
	if err != nil {
		return nil, err
	}
	return userIds, nil
}
