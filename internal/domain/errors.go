package domain

import "errors"

var (
	// ErrUnauthorizedSender is returned when anyone but the configured operator starts a session
	ErrUnauthorizedSender = errors.New("sender is not the authorized operator")

	// ErrInvalidStepInput is returned when input does not fit the current conversation step
	ErrInvalidStepInput = errors.New("invalid input for current step")

	// ErrEmptyPhotoSet is returned when the operator finishes the photo step with no photos
	ErrEmptyPhotoSet = errors.New("at least one photo is required")

	// ErrPageNotFound is returned when no page exists for a slug or no media exists for a reference
	ErrPageNotFound = errors.New("page not found")

	// ErrUpstreamFetch is returned when the media host cannot be reached or streamed from
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrPersistence is returned when the page store fails a read or write
	ErrPersistence = errors.New("persistence failure")
)
