package models

import "time"

// Story represents a published story.
type Story struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OwnerID    string    `json:"owner_id" gorm:"index;type:varchar(36)" validate:"required"` // set once at creation, never patched
	Title      string    `json:"title" validate:"required,max=200"`
	Content    string    `json:"content" validate:"required"`
	Author     string    `json:"author" validate:"required,max=100"` // display name, independent of OwnerID
	Bookmarked bool      `json:"bookmarked"`
	LikedBy    []string  `json:"liked_by" gorm:"-"` // loaded from story_likes; len(LikedBy) is the like count
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StoryLike records a single user's like on a story. The composite primary key
// is what keeps a user from appearing twice in a story's LikedBy set.
type StoryLike struct {
	StoryID string `gorm:"primaryKey;type:varchar(36)"`
	UserID  string `gorm:"primaryKey;type:varchar(36)"`
}

// TableName keeps the like table name explicit.
func (StoryLike) TableName() string {
	return "story_likes"
}

// StoryPatch carries the fields an owner may change on their story. Nil fields
// are left untouched.
type StoryPatch struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content    *string `json:"content" validate:"omitempty,min=1"`
	Author     *string `json:"author" validate:"omitempty,min=1,max=100"`
	Bookmarked *bool   `json:"bookmarked"`
}

// LikeResult is the outcome of a like toggle: the new count and whether the
// caller is now in the liked set.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}
