package models

import "errors"

// Error taxonomy shared by repositories, services and the HTTP boundary.
var (
	// ErrNotFound covers both missing rows and unpublished content hidden from
	// non-admin callers.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the caller lacks the required capability.
	ErrUnauthorized = errors.New("not authorized")

	// ErrValidation marks malformed input (forms, ids, enum values).
	ErrValidation = errors.New("validation failed")

	// ErrStore wraps any failure of the underlying persistence layer.
	ErrStore = errors.New("store failure")

	// ErrRender marks a markdown or view conversion failure.
	ErrRender = errors.New("render failure")
)
