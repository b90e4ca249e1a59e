package repositories

import "kisah/internal/models"

// StoryRepository defines the interface for story data access.
type StoryRepository interface {
	GetAll() ([]models.Story, error)
	GetByID(id string) (*models.Story, error)
	Create(story *models.Story) error
	Update(story *models.Story) error
	Delete(id string) error
	// ToggleLike atomically flips userID's membership in the story's liked set
	// and returns the new membership state and count. Implementations must not
	// allow a lost update under concurrent toggles from the same user.
	ToggleLike(storyID, userID string) (liked bool, likes int, err error)
}
