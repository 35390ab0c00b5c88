// Package form implements the record form controller: a transient edit buffer
// for one gallery record, the repeated image slot list, and the multipart
// submission posted to the backend's create or update endpoint.
//
// A Controller is created in create mode (no record, one empty new slot) or
// edit mode (one existing slot per persisted image). It is owned by a single
// UI loop and is not safe for concurrent use.
package form
