package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"kisah/internal/apperrors"
	"kisah/internal/models"
	"kisah/internal/repositories"
	"kisah/pkg/rabbitmq"
)

// StoryService handles business logic related to stories: creation, owner-only
// mutation and the like toggle.
type StoryService struct {
	storyRepo repositories.StoryRepository
	userRepo  repositories.UserRepository
	mqClient  *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewStoryService creates a new StoryService.
func NewStoryService(storyRepo repositories.StoryRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *StoryService {
	return &StoryService{
		storyRepo: storyRepo,
		userRepo:  userRepo,
		mqClient:  mqClient,
	}
}

// GetAllStories retrieves all stories. Ordering is left to presentation.
func (s *StoryService) GetAllStories() ([]models.Story, error) {
	return s.storyRepo.GetAll()
}

// GetStoryByID retrieves a single story by its ID.
func (s *StoryService) GetStoryByID(id string) (*models.Story, error) {
	return s.storyRepo.GetByID(id)
}

// CreateStory persists a new story for ownerID and appends its id to the
// owner's authored list. The owner is resolved before anything is written.
//
// The persist and the append are two separate writes with no transaction
// across them; if the append fails the story is left orphaned (not reachable
// from the owner's StoryIDs). The error is surfaced rather than rolled back.
func (s *StoryService) CreateStory(ownerID, title, content, author string) (*models.Story, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	author = strings.TrimSpace(author)
	if title == "" || content == "" || author == "" {
		return nil, fmt.Errorf("%w: title, content and author are required", apperrors.ErrValidation)
	}
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.GetByID(ownerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: owner %s", apperrors.ErrNotFound, ownerID)
		}
		return nil, fmt.Errorf("failed to resolve owner %s: %w", ownerID, err)
	}

	story := &models.Story{
		OwnerID: ownerID,
		Title:   title,
		Content: content,
		Author:  author,
		LikedBy: []string{},
	}
	if err := s.storyRepo.Create(story); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	if err := s.userRepo.AppendStoryID(ownerID, story.ID); err != nil {
		log.Printf("Story %s created but not linked to owner %s: %v", story.ID, ownerID, err)
		return nil, fmt.Errorf("story %s created but linking to owner failed: %w", story.ID, err)
	}

	s.publishEvent("story.created", map[string]interface{}{
		"storyID": story.ID,
		"ownerID": story.OwnerID,
		"title":   story.Title,
	})

	return story, nil
}

// UpdateStory applies the patch to the story after checking that callerID is
// the owner. The ownership check happens before any field is touched, and
// OwnerID itself is not patchable.
func (s *StoryService) UpdateStory(id, callerID string, patch models.StoryPatch) (*models.Story, error) {
	story, err := s.storyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if story.OwnerID != callerID {
		return nil, fmt.Errorf("%w: story %s belongs to another user", apperrors.ErrForbidden, id)
	}

	if patch.Title != nil {
		story.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		story.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Author != nil {
		story.Author = strings.TrimSpace(*patch.Author)
	}
	if patch.Bookmarked != nil {
		story.Bookmarked = *patch.Bookmarked
	}
	if story.Title == "" || story.Content == "" || story.Author == "" {
		return nil, fmt.Errorf("%w: title, content and author must not be empty", apperrors.ErrValidation)
	}

	if err := s.storyRepo.Update(story); err != nil {
		return nil, err
	}
	return story, nil
}

// DeleteStory removes the story after the same existence and ownership checks
// as UpdateStory. The story id is left in the owner's StoryIDs list; readers
// resolving that list must tolerate missing stories.
func (s *StoryService) DeleteStory(id, callerID string) error {
	story, err := s.storyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if story.OwnerID != callerID {
		return fmt.Errorf("%w: story %s belongs to another user", apperrors.ErrForbidden, id)
	}
	return s.storyRepo.Delete(id)
}

// ToggleLike flips userID's like on the story and returns the new count and
// membership. There is no ownership check here: any identified caller may
// toggle any story.
func (s *StoryService) ToggleLike(storyID, userID string) (*models.LikeResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrValidation)
	}

	liked, likes, err := s.storyRepo.ToggleLike(storyID, userID)
	if err != nil {
		return nil, err
	}

	s.publishEvent("story.liked", map[string]interface{}{
		"storyID": storyID,
		"userID":  userID,
		"liked":   liked,
		"likes":   likes,
	})

	return &models.LikeResult{Likes: likes, Liked: liked}, nil
}

// publishEvent sends a story event to RabbitMQ. Publishing is best effort; a
// missing client or a publish failure never fails the operation.
func (s *StoryService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
