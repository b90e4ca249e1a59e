package repositories

import (
	"fmt"
	"sync"

	"kisah/internal/apperrors"
	"kisah/internal/models"

	"github.com/google/uuid"
)

// MockStoryRepository is an in-memory implementation of StoryRepository.
type MockStoryRepository struct {
	stories map[string]models.Story
	mu      sync.RWMutex
}

// NewMockStoryRepository creates a new instance of MockStoryRepository.
func NewMockStoryRepository() *MockStoryRepository {
	return &MockStoryRepository{
		stories: make(map[string]models.Story),
	}
}

// GetAll returns all stories.
func (r *MockStoryRepository) GetAll() ([]models.Story, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	storyList := make([]models.Story, 0, len(r.stories))
	for _, s := range r.stories {
		storyList = append(storyList, s)
	}
	return storyList, nil
}

// GetByID returns a story by its ID.
func (r *MockStoryRepository) GetByID(id string) (*models.Story, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	story, ok := r.stories[id]
	if !ok {
		return nil, fmt.Errorf("%w: story %s", apperrors.ErrNotFound, id)
	}
	return &story, nil
}

// Create adds a new story.
func (r *MockStoryRepository) Create(story *models.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if story.ID == "" {
		story.ID = uuid.New().String()
	}
	r.stories[story.ID] = *story
	return nil
}

// Update modifies an existing story.
func (r *MockStoryRepository) Update(story *models.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.stories[story.ID]
	if !ok {
		return fmt.Errorf("%w: story %s", apperrors.ErrNotFound, story.ID)
	}
	r.stories[story.ID] = *story
	return nil
}

// Delete removes a story by its ID.
func (r *MockStoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.stories[id]
	if !ok {
		return fmt.Errorf("%w: story %s", apperrors.ErrNotFound, id)
	}
	delete(r.stories, id)
	return nil
}

// ToggleLike flips the user's membership in the liked set. The write lock is
// held across the whole read-modify-write, so concurrent toggles from the same
// user serialize instead of losing an update.
func (r *MockStoryRepository) ToggleLike(storyID, userID string) (bool, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	story, ok := r.stories[storyID]
	if !ok {
		return false, 0, fmt.Errorf("%w: story %s", apperrors.ErrNotFound, storyID)
	}

	liked := true
	likedBy := make([]string, 0, len(story.LikedBy)+1)
	for _, id := range story.LikedBy {
		if id == userID {
			liked = false
			continue
		}
		likedBy = append(likedBy, id)
	}
	if liked {
		likedBy = append(likedBy, userID)
	}
	story.LikedBy = likedBy
	r.stories[storyID] = story

	return liked, len(likedBy), nil
}
