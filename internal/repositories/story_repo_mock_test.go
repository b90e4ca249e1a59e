package repositories_test

import (
	"sync"
	"testing"

	"kisah/internal/models"
	"kisah/internal/repositories"

	"github.com/stretchr/testify/assert"
)

// TestMockStoryRepository_ConcurrentToggles hammers ToggleLike with many
// goroutines toggling for the same user. Each goroutine performs an odd number
// of toggles, so the total is odd and the user must end up liked exactly once,
// with no duplicate entries regardless of interleaving.
func TestMockStoryRepository_ConcurrentToggles(t *testing.T) {
	repo := repositories.NewMockStoryRepository()
	story := &models.Story{OwnerID: "ann-id", Title: "T", Content: "C", Author: "Ann"}
	assert.NoError(t, repo.Create(story))

	const goroutines = 25
	const togglesEach = 3 // odd, so the combined toggle count is odd

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < togglesEach; j++ {
				_, _, err := repo.ToggleLike(story.ID, "u1")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(story.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.LikedBy, "odd toggle total must leave exactly one membership")
}

// TestMockStoryRepository_ConcurrentUsers checks that distinct users toggling
// in parallel each end up with a single membership.
func TestMockStoryRepository_ConcurrentUsers(t *testing.T) {
	repo := repositories.NewMockStoryRepository()
	story := &models.Story{OwnerID: "ann-id", Title: "T", Content: "C", Author: "Ann"}
	assert.NoError(t, repo.Create(story))

	users := []string{"u1", "u2", "u3", "u4", "u5"}
	var wg sync.WaitGroup
	for _, u := range users {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			liked, _, err := repo.ToggleLike(story.ID, userID)
			assert.NoError(t, err)
			assert.True(t, liked)
		}(u)
	}
	wg.Wait()

	got, err := repo.GetByID(story.ID)
	assert.NoError(t, err)
	assert.Len(t, got.LikedBy, len(users))

	seen := make(map[string]bool)
	for _, id := range got.LikedBy {
		assert.False(t, seen[id], "duplicate membership for %s", id)
		seen[id] = true
	}
}
