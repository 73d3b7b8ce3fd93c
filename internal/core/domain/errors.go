package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Entity errors
var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrProjectNotFound      = fmt.Errorf("project %w", ErrNotFound)
	ErrBidNotFound          = fmt.Errorf("bid %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)
	ErrLoanNotFound         = fmt.Errorf("loan %w", ErrNotFound)
	ErrOrderNotFound        = fmt.Errorf("order %w", ErrNotFound)
	ErrItemNotFound         = fmt.Errorf("inventory item %w", ErrNotFound)

	ErrEmailAlreadyExists = fmt.Errorf("%w: user with this email already registered", ErrConflict)
	ErrDuplicateID        = fmt.Errorf("%w: duplicate id", ErrConflict)
	ErrBidAlreadyAwarded  = fmt.Errorf("%w: project already has an awarded bid", ErrConflict)
)

// Upload errors
var (
	ErrUnsupportedFileType = fmt.Errorf("%w: unsupported file type", ErrValidation)
	ErrFileTooLarge        = fmt.Errorf("%w: file exceeds size limit", ErrValidation)
	ErrEmptyFile           = fmt.Errorf("%w: file is empty", ErrValidation)
)

// Validationf returns an ErrValidation with a formatted message
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound wraps a specific not-found error with the missing id
func NotFound(base error, id string) error {
	return fmt.Errorf("%w: %s", base, id)
}
