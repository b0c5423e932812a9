package entity

// User represents an authenticated account
type User struct {
	Id string `json:"id" gorm:"column:id;primaryKey"`
	// Email doubles as the login name; its local-part seeds the profile
	// display name when no pending name was given at registration.
	Email       string `json:"email" gorm:"column:email;uniqueIndex"`
	Password    string `json:"-" gorm:"column:password"`
	PendingName string `json:"-" gorm:"column:pending_name"`
	CreatedAt   int64  `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt   int64  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
