package repositories

import (
	"errors"
	"fmt"

	"kisah/internal/apperrors"
	"kisah/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMStoryRepository is a GORM implementation of StoryRepository.
type GORMStoryRepository struct {
	db *gorm.DB
}

// NewGORMStoryRepository creates a new instance of GORMStoryRepository.
func NewGORMStoryRepository(db *gorm.DB) *GORMStoryRepository {
	return &GORMStoryRepository{
		db: db,
	}
}

// GetAll retrieves all stories from the database. No ordering is promised;
// presentation decides how to sort.
func (r *GORMStoryRepository) GetAll() ([]models.Story, error) {
	var stories []models.Story
	if err := r.db.Find(&stories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all stories: %w", err)
	}
	for i := range stories {
		if err := r.loadLikedBy(&stories[i]); err != nil {
			return nil, err
		}
	}
	return stories, nil
}

// GetByID retrieves a single story by its ID from the database.
func (r *GORMStoryRepository) GetByID(id string) (*models.Story, error) {
	var story models.Story
	if err := r.db.First(&story, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: story %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get story by ID %s: %w", id, err)
	}
	if err := r.loadLikedBy(&story); err != nil {
		return nil, err
	}
	return &story, nil
}

// Create creates a new story in the database.
func (r *GORMStoryRepository) Create(story *models.Story) error {
	if story.ID == "" {
		story.ID = uuid.New().String()
	}
	if err := r.db.Create(story).Error; err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

// Update updates an existing story in the database.
func (r *GORMStoryRepository) Update(story *models.Story) error {
	res := r.db.Save(story)
	if res.Error != nil {
		return fmt.Errorf("failed to update story: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: story %s", apperrors.ErrNotFound, story.ID)
	}
	return nil
}

// Delete deletes a story and its like rows. The owner's user_stories link is
// intentionally left behind; see UserRepository.AppendStoryID.
func (r *GORMStoryRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Story{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: story %s", apperrors.ErrNotFound, id)
		}
		return tx.Where("story_id = ?", id).Delete(&models.StoryLike{}).Error
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete story %s: %w", id, err)
	}
	return nil
}

// ToggleLike flips userID's like on a story inside a single transaction.
// The composite primary key on story_likes makes the add side idempotent, so
// two racing toggles from one user cannot leave a duplicate row; the losing
// insert becomes a no-op and the count stays consistent.
func (r *GORMStoryRepository) ToggleLike(storyID, userID string) (bool, int, error) {
	var liked bool
	var likes int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var story models.Story
		if err := tx.First(&story, "id = ?", storyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: story %s", apperrors.ErrNotFound, storyID)
			}
			return err
		}

		res := tx.Where("story_id = ? AND user_id = ?", storyID, userID).Delete(&models.StoryLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Nothing to remove, so this toggle is a like.
			like := models.StoryLike{StoryID: storyID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
			liked = true
		}

		return tx.Model(&models.StoryLike{}).Where("story_id = ?", storyID).Count(&likes).Error
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, 0, err
		}
		return false, 0, fmt.Errorf("failed to toggle like on story %s: %w", storyID, err)
	}
	return liked, int(likes), nil
}

func (r *GORMStoryRepository) loadLikedBy(story *models.Story) error {
	var likes []models.StoryLike
	if err := r.db.Where("story_id = ?", story.ID).Find(&likes).Error; err != nil {
		return fmt.Errorf("failed to load likes for story %s: %w", story.ID, err)
	}
	story.LikedBy = make([]string, 0, len(likes))
	for _, like := range likes {
		story.LikedBy = append(story.LikedBy, like.UserID)
	}
	return nil
}
