package repositories_test

import (
	"fmt"
	"testing"

	"kisah/internal/apperrors"
	"kisah/internal/models"
	"kisah/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens a private in-memory SQLite database and migrates the
// schema. Each test gets its own database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Story{}, &models.UserStory{}, &models.StoryLike{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestGORMUserRepository_AppendStoryID(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMUserRepository(db)

	user := &models.User{Username: "ann", Email: "ann@x.com", Password: "hash"}
	assert.NoError(t, repo.Create(user))
	assert.NotEmpty(t, user.ID)

	assert.NoError(t, repo.AppendStoryID(user.ID, "story-1"))
	assert.NoError(t, repo.AppendStoryID(user.ID, "story-2"))

	got, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"story-1", "story-2"}, got.StoryIDs, "StoryIDs keep insertion order")

	// Unknown lookups map to the typed not-found kind
	_, err = repo.GetByEmail("nobody@x.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.GetByUsername("nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGORMStoryRepository_CRUD(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMStoryRepository(db)

	story := &models.Story{OwnerID: "ann-id", Title: "First", Content: "Once", Author: "Ann"}
	assert.NoError(t, repo.Create(story))
	assert.NotEmpty(t, story.ID)

	got, err := repo.GetByID(story.ID)
	assert.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	assert.Empty(t, got.LikedBy)

	got.Title = "Revised"
	assert.NoError(t, repo.Update(got))
	got, err = repo.GetByID(story.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Revised", got.Title)

	all, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	assert.NoError(t, repo.Delete(story.ID))
	_, err = repo.GetByID(story.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(story.ID), apperrors.ErrNotFound)
}

func TestGORMStoryRepository_ToggleLike(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMStoryRepository(db)

	story := &models.Story{OwnerID: "ann-id", Title: "T", Content: "C", Author: "Ann"}
	assert.NoError(t, repo.Create(story))

	// First toggle likes
	liked, likes, err := repo.ToggleLike(story.ID, "u1")
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, likes)

	// Second user
	liked, likes, err = repo.ToggleLike(story.ID, "u2")
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, likes)

	// Second toggle from u1 unlikes
	liked, likes, err = repo.ToggleLike(story.ID, "u1")
	assert.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 1, likes)

	got, err := repo.GetByID(story.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"u2"}, got.LikedBy)

	// Missing story
	_, _, err = repo.ToggleLike("missing", "u1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Deleting a story removes its like rows but leaves the owner's user_stories
// link behind, so StoryIDs can reference a story that no longer exists.
func TestGORMStoryRepository_DeleteLeavesDanglingLink(t *testing.T) {
	db := openTestDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	storyRepo := repositories.NewGORMStoryRepository(db)

	user := &models.User{Username: "ann", Email: "ann@x.com", Password: "hash"}
	assert.NoError(t, userRepo.Create(user))

	story := &models.Story{OwnerID: user.ID, Title: "T", Content: "C", Author: "Ann"}
	assert.NoError(t, storyRepo.Create(story))
	assert.NoError(t, userRepo.AppendStoryID(user.ID, story.ID))

	_, _, err := storyRepo.ToggleLike(story.ID, "u1")
	assert.NoError(t, err)

	assert.NoError(t, storyRepo.Delete(story.ID))

	var likeCount int64
	assert.NoError(t, db.Model(&models.StoryLike{}).Where("story_id = ?", story.ID).Count(&likeCount).Error)
	assert.Zero(t, likeCount, "like rows are cleaned up with the story")

	got, err := userRepo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{story.ID}, got.StoryIDs, "dangling link intentionally survives deletion")
	_, err = storyRepo.GetByID(story.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
