package handlers

import (
	"log"

	"kisah/internal/models"
	"kisah/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoryHandler handles HTTP requests for stories.
type StoryHandler struct {
	service  *services.StoryService
	validate *validator.Validate
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(service *services.StoryService) *StoryHandler {
	return &StoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the story routes with the Fiber app. Reads are
// public; every mutation goes through the auth middleware, which resolves the
// bearer token into the caller id the core operations require.
func (h *StoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/", h.HandleGetStories)
	router.Get("/story/:id", h.HandleGetStoryByID)
	router.Post("/create", auth, h.HandleCreateStory)
	router.Put("/edit/:id", auth, h.HandleUpdateStory)
	router.Put("/:id", auth, h.HandleUpdateStory)
	router.Delete("/:id", auth, h.HandleDeleteStory)
	router.Post("/story/:id/like", auth, h.HandleToggleLike)
}

// HandleGetStories retrieves all stories.
func (h *StoryHandler) HandleGetStories(c *fiber.Ctx) error {
	stories, err := h.service.GetAllStories()
	if err != nil {
		log.Printf("Error getting all stories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve stories",
			"error":   err.Error(),
		})
	}
	return c.JSON(stories)
}

// HandleGetStoryByID retrieves a single story by its ID.
func (h *StoryHandler) HandleGetStoryByID(c *fiber.Ctx) error {
	storyID := c.Params("id")
	story, err := h.service.GetStoryByID(storyID)
	if err != nil {
		log.Printf("Error getting story by ID %s: %v", storyID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not retrieve story",
			"error":   err.Error(),
		})
	}
	return c.JSON(story)
}

// CreateStoryRequest represents the request body for story creation.
type CreateStoryRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author" validate:"required,max=100"`
}

// HandleCreateStory creates a new story owned by the caller.
func (h *StoryHandler) HandleCreateStory(c *fiber.Ctx) error {
	var req CreateStoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create story request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	callerID, _ := c.Locals("user_id").(string)
	story, err := h.service.CreateStory(callerID, req.Title, req.Content, req.Author)
	if err != nil {
		log.Printf("Error creating story: %v", err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not create story",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(story)
}

// HandleUpdateStory applies a partial update to a story the caller owns.
func (h *StoryHandler) HandleUpdateStory(c *fiber.Ctx) error {
	storyID := c.Params("id")

	var patch models.StoryPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing update story request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	callerID, _ := c.Locals("user_id").(string)
	story, err := h.service.UpdateStory(storyID, callerID, patch)
	if err != nil {
		log.Printf("Error updating story %s: %v", storyID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not update story",
			"error":   err.Error(),
		})
	}

	return c.JSON(story)
}

// HandleDeleteStory deletes a story the caller owns.
func (h *StoryHandler) HandleDeleteStory(c *fiber.Ctx) error {
	storyID := c.Params("id")

	callerID, _ := c.Locals("user_id").(string)
	if err := h.service.DeleteStory(storyID, callerID); err != nil {
		log.Printf("Error deleting story %s: %v", storyID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not delete story",
			"error":   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleToggleLike flips the caller's like on a story.
func (h *StoryHandler) HandleToggleLike(c *fiber.Ctx) error {
	storyID := c.Params("id")

	callerID, _ := c.Locals("user_id").(string)
	result, err := h.service.ToggleLike(storyID, callerID)
	if err != nil {
		log.Printf("Error toggling like on story %s: %v", storyID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not toggle like",
			"error":   err.Error(),
		})
	}

	return c.JSON(result)
}
