// Package apperror defines the domain error kinds shared by the service and
// HTTP layers.
//
// Services return *AppError values; the HTTP layer inspects them with
// errors.Is against the sentinels below and picks a status code. Nothing in
// this package knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrConflict   = errors.New("conflict")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing record. key is whatever the caller looked it up
// by: an id, an email, or a "user/person" pair for favorite links.
func NotFound(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, key),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Required is the presence-check shorthand used for request fields.
func Required(field string) *AppError {
	return ValidationFailed(field, fmt.Sprintf("%s is required", field))
}

// Conflict reports a record that already exists (a registered email or an
// existing favorite link).
func Conflict(resource, key string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s %s already exists", resource, key),
	}
}
