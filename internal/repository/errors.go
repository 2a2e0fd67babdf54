package repository

import "errors"

// ErrNotFound is returned when the requested contact does not exist.
// Both the PostgreSQL and in-memory repositories use it so callers can
// branch with errors.Is regardless of the backend.
var ErrNotFound = errors.New("not found")
