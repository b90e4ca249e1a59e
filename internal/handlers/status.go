package handlers

import (
	"errors"

	"kisah/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// statusFromError maps the core's typed error kinds to HTTP statuses.
// Anything unclassified is an internal failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
