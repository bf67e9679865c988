package domain

import "fmt"

// AppError is the base domain error type. Message and Details are what the
// client sees inside the error envelope; Status picks the HTTP code and Cause
// stays server-side.
type AppError struct {
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
	Status  int            `json:"-"`
	Cause   error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithDetails attaches structured detail fields to the error.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// Standard domain error constructors.

func ErrValidation(msg string) *AppError {
	return &AppError{Message: msg, Status: 400}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Message: msg, Status: 401}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Message: msg, Status: 403}
}

func ErrNotFound(entity string, id any) *AppError {
	return &AppError{Message: fmt.Sprintf("%s with ID %v not found", entity, id), Status: 404}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Message: msg, Status: 409}
}

// ErrDuplicate is the conflict variant used by admin-facing routes, which
// report uniqueness violations as 400 rather than 409.
func ErrDuplicate(msg string) *AppError {
	return &AppError{Message: msg, Status: 400}
}

func ErrAccountLocked(msg string) *AppError {
	return &AppError{Message: msg, Status: 429}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Message: msg, Status: 500, Cause: cause}
}
