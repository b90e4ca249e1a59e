package repositories

import "kisah/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// AppendStoryID adds a story id to the end of the user's authored list.
	// The list only ever grows; story deletion does not call back here.
	AppendStoryID(userID, storyID string) error
}
