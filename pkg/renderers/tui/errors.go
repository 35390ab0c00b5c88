package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSubmitter is returned when a form is saved without a backend.
	ErrNoSubmitter = errors.New("tui: no submitter configured")
)
