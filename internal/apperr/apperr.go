// Package apperr defines the error taxonomy shared by all services.
//
// Services return these sentinels (usually wrapped with %w) and the HTTP
// boundary maps each one to a fixed status family. Nothing outside the
// boundary inspects status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated covers every authentication failure: missing,
	// malformed, tampered or expired token, unknown or deactivated account.
	// Callers must not be able to tell which one it was.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound is returned both when a row does not exist and when it
	// exists but belongs to another owner.
	ErrNotFound = errors.New("not found")

	// ErrOwnershipViolation means a referenced related resource exists but
	// belongs to a different owner, so it cannot be attached.
	ErrOwnershipViolation = errors.New("ownership violation")

	// ErrConflict covers uniqueness violations.
	ErrConflict = errors.New("conflict")

	// ErrValidation covers malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
)

// Conflict variants. Registration reports username and email collisions
// independently; categories report per-owner active-name collisions.
var (
	ErrUsernameTaken     = fmt.Errorf("%w: username is already taken", ErrConflict)
	ErrEmailTaken        = fmt.Errorf("%w: email is already in use", ErrConflict)
	ErrCategoryNameTaken = fmt.Errorf("%w: category name is already in use", ErrConflict)
)

// Validationf wraps ErrValidation with a caller-facing detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// NotFoundf wraps ErrNotFound naming the missing resource.
func NotFoundf(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}
