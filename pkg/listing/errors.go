package listing

import "errors"

var (
	// ErrRecordNotFound is returned when an id is not in the local record set.
	ErrRecordNotFound = errors.New("listing: record not found")
	// ErrNotListing is returned when a list action is attempted while a form is active.
	ErrNotListing = errors.New("listing: list view is not active")
	// ErrNoDeleter is returned when Delete is configured without a backend.
	ErrNoDeleter = errors.New("listing: deleter is required")
)
