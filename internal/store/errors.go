package store

import "errors"

// ErrUnavailable classifies any transport or connectivity failure while
// talking to the remote table. Implementations wrap it so callers can
// report one user-visible failure without inspecting backend errors.
var ErrUnavailable = errors.New("store unavailable")
