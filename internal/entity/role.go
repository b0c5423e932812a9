package entity

import "github.com/alumnet/reunion/pkg/constant"

// UserRole represents one role assignment; a user may hold several rows
type UserRole struct {
	Id        int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserId    string `json:"user_id" gorm:"column:user_id;uniqueIndex:idx_user_role"`
	Role      string `json:"role" gorm:"column:role;uniqueIndex:idx_user_role"`
	CreatedAt int64  `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
}

// TableName returns the table name for UserRole
func (UserRole) TableName() string {
	return "user_roles"
}

// RolePriority maps a role to its gating priority
func RolePriority(role string) int {
	switch role {
	case constant.RoleAdmin:
		return 3
	case constant.RoleTeacher:
		return 2
	case constant.RoleUser:
		return 1
	default:
		return 0
	}
}

// ResolveRole reduces a user's role rows to the effective role used for
// gating, by priority admin > teacher > user. No rows resolves to user.
func ResolveRole(roles []string) string {
	effective := constant.RoleUser
	best := RolePriority(effective)
	for _, r := range roles {
		if p := RolePriority(r); p > best {
			best = p
			effective = r
		}
	}
	return effective
}

// RoleAtLeast reports whether role meets the required minimum
func RoleAtLeast(role, required string) bool {
	return RolePriority(role) >= RolePriority(required)
}
