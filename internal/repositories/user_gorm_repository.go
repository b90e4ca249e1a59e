package repositories

import (
	"errors"
	"fmt"

	"kisah/internal/apperrors"
	"kisah/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getOne("username = ?", username)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getOne("email = ?", email)
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	return r.getOne("id = ?", id)
}

// AppendStoryID appends a story id to the user's authored list by inserting a
// link row at the next position.
func (r *GORMUserRepository) AppendStoryID(userID, storyID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserStory{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		link := models.UserStory{UserID: userID, StoryID: storyID, Position: int(count)}
		return tx.Create(&link).Error
	})
	if err != nil {
		return fmt.Errorf("failed to link story %s to user %s: %w", storyID, userID, err)
	}
	return nil
}

func (r *GORMUserRepository) getOne(query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user (%s)", apperrors.ErrNotFound, arg)
		}
		return nil, fmt.Errorf("failed to get user (%s): %w", arg, err)
	}
	if err := r.loadStoryIDs(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GORMUserRepository) loadStoryIDs(user *models.User) error {
	var links []models.UserStory
	if err := r.db.Where("user_id = ?", user.ID).Order("position").Find(&links).Error; err != nil {
		return fmt.Errorf("failed to load story ids for user %s: %w", user.ID, err)
	}
	user.StoryIDs = make([]string, 0, len(links))
	for _, link := range links {
		user.StoryIDs = append(user.StoryIDs, link.StoryID)
	}
	return nil
}
