// Package endpoints resolves the gallery backend's mutating endpoints from an
// OpenAPI 3 contract. The default contract is embedded and describes the
// store, update, and delete operations; callers may parse their own document
// when the backend mounts the routes elsewhere.
package endpoints
