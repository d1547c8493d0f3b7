// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that a candidate booking intersects an
// existing one, while ErrSessionNotFound indicates an expired or
// revoked admin session.
package repository

import "errors"

// ErrConflict is returned when a candidate booking overlaps an existing
// reservation. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("date range already booked")

// ErrSessionNotFound is returned when a session id has no live
// server-side record, either because it expired or was deleted at
// logout. Handlers should translate this into an HTTP 401 response.
var ErrSessionNotFound = errors.New("session not found")
