// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrNoChange signals that an update matched
// a row but every value was already identical.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrNoChange indicates an UPDATE attempted to set fields equal to
// the current values. Handlers should translate this into an HTTP
// 409 response.
var ErrNoChange = errors.New("no change")

// ErrGigNotFound indicates that a gig was not located in the DB.
var ErrGigNotFound = errors.New("gig not found")

// ErrGenreNotFound indicates that a genre ID does not exist in the
// catalogue.
var ErrGenreNotFound = errors.New("genre not found")

// ErrEmailExists indicates a registration attempt with an email that
// is already taken.
var ErrEmailExists = errors.New("email already exists")
