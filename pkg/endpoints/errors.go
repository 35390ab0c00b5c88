package endpoints

import "errors"

var (
	// ErrUnknownOperation is returned when an operation id is not part of the contract.
	ErrUnknownOperation = errors.New("endpoints: unknown operation")
	// ErrMissingParameter is returned when a path template parameter has no value.
	ErrMissingParameter = errors.New("endpoints: missing path parameter")
)
