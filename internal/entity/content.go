package entity

// Teacher represents a faculty member shown in the teachers section
type Teacher struct {
	Id          string  `json:"id" gorm:"column:id;primaryKey"`
	Name        string  `json:"name" gorm:"column:name"`
	Role        string  `json:"role" gorm:"column:role"`
	Designation *string `json:"designation" gorm:"column:designation"`
	Description *string `json:"description" gorm:"column:description"`
	PhotoUrl    *string `json:"photo_url" gorm:"column:photo_url"`
	CreatedBy   *string `json:"created_by" gorm:"column:created_by"`
	CreatedAt   int64   `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt   int64   `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for Teacher
func (Teacher) TableName() string {
	return "teachers"
}

// Student represents a classmate in the student directory
type Student struct {
	Id        string  `json:"id" gorm:"column:id;primaryKey"`
	Name      string  `json:"name" gorm:"column:name"`
	Batch     string  `json:"batch" gorm:"column:batch"`
	Email     *string `json:"email" gorm:"column:email"`
	Bio       *string `json:"bio" gorm:"column:bio"`
	Role      *string `json:"role" gorm:"column:role"`
	PhotoUrl  *string `json:"photo_url" gorm:"column:photo_url"`
	CreatedBy *string `json:"created_by" gorm:"column:created_by"`
	CreatedAt int64   `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt int64   `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for Student
func (Student) TableName() string {
	return "students"
}

// StudentGroup represents a student project/social group
type StudentGroup struct {
	Id          string  `json:"id" gorm:"column:id;primaryKey"`
	Name        string  `json:"name" gorm:"column:name"`
	Description *string `json:"description" gorm:"column:description"`
	PhotoUrl    *string `json:"photo_url" gorm:"column:photo_url"`
	CreatedBy   *string `json:"created_by" gorm:"column:created_by"`
	CreatedAt   int64   `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt   int64   `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for StudentGroup
func (StudentGroup) TableName() string {
	return "student_groups"
}

// GroupMember links a student to a student group
type GroupMember struct {
	Id        int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	GroupId   string `json:"group_id" gorm:"column:group_id;uniqueIndex:idx_group_student"`
	StudentId string `json:"student_id" gorm:"column:student_id;uniqueIndex:idx_group_student"`
	CreatedAt int64  `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
}

// TableName returns the table name for GroupMember
func (GroupMember) TableName() string {
	return "group_members"
}

// StudentGroupInfo represents a group with its member roster
type StudentGroupInfo struct {
	StudentGroup
	Members []*Student `json:"members"`
}

// GalleryItem represents one photo in the memories gallery
type GalleryItem struct {
	Id          string  `json:"id" gorm:"column:id;primaryKey"`
	Title       *string `json:"title" gorm:"column:title"`
	Description *string `json:"description" gorm:"column:description"`
	Category    *string `json:"category" gorm:"column:category"`
	PhotoUrl    string  `json:"photo_url" gorm:"column:photo_url"`
	Status      string  `json:"status" gorm:"column:status"`
	UploadedBy  *string `json:"uploaded_by" gorm:"column:uploaded_by"`
	ReviewedBy  *string `json:"reviewed_by" gorm:"column:reviewed_by"`
	ReviewedAt  *int64  `json:"reviewed_at" gorm:"column:reviewed_at"`
	CreatedAt   int64   `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
}

// TableName returns the table name for GalleryItem
func (GalleryItem) TableName() string {
	return "gallery"
}

// Video represents a shared video, gated by moderation status
type Video struct {
	Id              string  `json:"id" gorm:"column:id;primaryKey"`
	Title           string  `json:"title" gorm:"column:title"`
	Description     *string `json:"description" gorm:"column:description"`
	VideoUrl        string  `json:"video_url" gorm:"column:video_url"`
	ThumbnailUrl    *string `json:"thumbnail_url" gorm:"column:thumbnail_url"`
	UploaderName    string  `json:"uploader_name" gorm:"column:uploader_name"`
	UploadedBy      *string `json:"uploaded_by" gorm:"column:uploaded_by"`
	DurationSeconds *int    `json:"duration_seconds" gorm:"column:duration_seconds"`
	ViewCount       int64   `json:"view_count" gorm:"column:view_count"`
	Status          string  `json:"status" gorm:"column:status"`
	ReviewedBy      *string `json:"reviewed_by" gorm:"column:reviewed_by"`
	ReviewedAt      *int64  `json:"reviewed_at" gorm:"column:reviewed_at"`
	CreatedAt       int64   `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
}

// TableName returns the table name for Video
func (Video) TableName() string {
	return "videos"
}

// Review represents a guestbook message with a star rating. Kept in the
// "messages" table for parity with the site's public messages section.
type Review struct {
	Id          string  `json:"id" gorm:"column:id;primaryKey"`
	AuthorName  string  `json:"author_name" gorm:"column:author_name"`
	AuthorEmail *string `json:"author_email" gorm:"column:author_email"`
	Message     string  `json:"message" gorm:"column:message"`
	Rating      *int    `json:"rating" gorm:"column:rating"`
	Status      string  `json:"status" gorm:"column:status"`
	UserId      *string `json:"user_id" gorm:"column:user_id"`
	ReviewedBy  *string `json:"reviewed_by" gorm:"column:reviewed_by"`
	ReviewedAt  *int64  `json:"reviewed_at" gorm:"column:reviewed_at"`
	CreatedAt   int64   `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
}

// TableName returns the table name for Review
func (Review) TableName() string {
	return "messages"
}

// ReunionInfo represents the singleton reunion event record
type ReunionInfo struct {
	Id               string  `json:"id" gorm:"column:id;primaryKey"`
	Description      *string `json:"description" gorm:"column:description"`
	Venue            *string `json:"venue" gorm:"column:venue"`
	VenueAddress     *string `json:"venue_address" gorm:"column:venue_address"`
	ReunionDate      *int64  `json:"reunion_date" gorm:"column:reunion_date"`
	CountdownEnabled bool    `json:"countdown_enabled" gorm:"column:countdown_enabled"`
	ContactEmail     *string `json:"contact_email" gorm:"column:contact_email"`
	ContactPhone     *string `json:"contact_phone" gorm:"column:contact_phone"`
	UpdatedBy        *string `json:"updated_by" gorm:"column:updated_by"`
	UpdatedAt        int64   `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for ReunionInfo
func (ReunionInfo) TableName() string {
	return "reunion_info"
}
