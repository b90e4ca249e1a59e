package apperrors

import "errors"

// Sentinel errors for the expected, caller-handled outcomes of the core
// operations. Handlers map these to HTTP statuses with errors.Is; anything
// that does not wrap one of them is an internal failure.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
