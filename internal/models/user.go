package models

import "time"

// User represents a registered author.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	StoryIDs  []string  `json:"story_ids" gorm:"-"`                                   // loaded from user_stories, append-only
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStory links a user to a story they authored. Rows are appended on story
// creation and deliberately kept when a story is deleted, so readers resolving
// StoryIDs must tolerate missing stories.
type UserStory struct {
	UserID   string `gorm:"primaryKey;type:varchar(36)"`
	StoryID  string `gorm:"primaryKey;type:varchar(36)"`
	Position int    `gorm:"not null"`
}

// TableName keeps the link table name explicit.
func (UserStory) TableName() string {
	return "user_stories"
}
