package entity

import "strings"

// Profile represents a user's public identity
type Profile struct {
	Id          int64   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserId      string  `json:"user_id" gorm:"column:user_id;uniqueIndex"`
	DisplayName string  `json:"display_name" gorm:"column:display_name"`
	AvatarUrl   *string `json:"avatar_url" gorm:"column:avatar_url"`
	CreatedAt   int64   `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt   int64   `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}

// ProfileInfo represents profile info for API responses, enriched with presence
type ProfileInfo struct {
	UserId      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	AvatarUrl   *string `json:"avatar_url"`
	IsOnline    bool    `json:"is_online"`
	LastSeen    int64   `json:"last_seen,omitempty"`
}

// ToProfileInfo converts Profile to ProfileInfo without presence
func (p *Profile) ToProfileInfo() *ProfileInfo {
	return &ProfileInfo{
		UserId:      p.UserId,
		DisplayName: p.DisplayName,
		AvatarUrl:   p.AvatarUrl,
	}
}

// SeedDisplayName picks the initial display name for a lazily created
// profile: the pending name given at registration, falling back to the
// email local-part.
func SeedDisplayName(pendingName, email string) string {
	name := strings.TrimSpace(pendingName)
	if name != "" {
		return name
	}
	if idx := strings.Index(email, "@"); idx > 0 {
		return email[:idx]
	}
	return email
}
