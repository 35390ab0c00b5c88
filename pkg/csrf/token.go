// Package csrf carries the backend-issued security token. The token is passed
// explicitly to the controllers and client instead of being read from the host
// page at request time.
package csrf

import (
	"net/http"
	"strings"
)

const (
	// FieldName is the form field the backend reads the token from.
	FieldName = "_token"
	// HeaderName is the request header used by non-form requests.
	HeaderName = "X-CSRF-TOKEN"
)

// Token is a per-session credential required on every mutating request.
type Token string

// New trims surrounding whitespace from a raw token value.
func New(raw string) Token {
	return Token(strings.TrimSpace(raw))
}

// Value returns the raw token.
func (t Token) Value() string {
	return string(t)
}

// IsZero reports a missing token.
func (t Token) IsZero() bool {
	return strings.TrimSpace(string(t)) == ""
}

// String masks the token so it does not leak into logs.
func (t Token) String() string {
	if t.IsZero() {
		return ""
	}
	return "[redacted]"
}

// Apply sets the token header on req.
func (t Token) Apply(req *http.Request) {
	if req == nil || t.IsZero() {
		return
	}
	req.Header.Set(HeaderName, t.Value())
}
