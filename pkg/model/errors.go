package model

import "errors"

var (
	// ErrInvalidStatus is returned when a status value cannot be interpreted.
	ErrInvalidStatus = errors.New("model: invalid status")
	// ErrEmptyUpload signals an upload without a file name.
	ErrEmptyUpload = errors.New("model: upload requires a file name")
)
