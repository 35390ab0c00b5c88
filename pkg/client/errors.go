package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBaseURL is returned when the backend base URL is missing or malformed.
	ErrBaseURL = errors.New("client: invalid base url")
	// ErrMissingToken is returned when a mutating request is attempted without a token.
	ErrMissingToken = errors.New("client: security token is required")
)

// StatusError reports a backend response outside the 2xx and 3xx ranges.
type StatusError struct {
	Code   int
	Method string
	Path   string
}

func (e StatusError) Error() string {
	text := http.StatusText(e.Code)
	if text == "" {
		text = "unexpected status"
	}
	return fmt.Sprintf("client: %s %s: %d %s", e.Method, e.Path, e.Code, text)
}

// StatusCode returns the HTTP status the backend answered with.
func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}
