// Package listing implements the gallery list controller: the cached record
// set, the free-text search filter, fixed-size page slicing, the view state
// machine that swaps between the list and the record form, and optimistic
// deletes dispatched to the backend.
//
// The controller is owned by one UI loop. The only work it starts in the
// background is the delete request, whose outcome is delivered on a channel.
package listing
