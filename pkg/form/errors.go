package form

import "errors"

var (
	// ErrSlotIndex is returned when an image slot index is out of range.
	ErrSlotIndex = errors.New("form: image slot index out of range")
	// ErrNoSubmitter is returned when Submit is called without a transport.
	ErrNoSubmitter = errors.New("form: submitter is required")
	// ErrMissingToken is returned when a submission is built without a security token.
	ErrMissingToken = errors.New("form: security token is required")
)
