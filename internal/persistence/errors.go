package persistence

import "errors"

// ErrNotFound is returned when a contract or record lookup matches nothing.
var ErrNotFound = errors.New("persistence: not found")
