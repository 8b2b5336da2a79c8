// Package apperr defines sentinel errors shared across the bridge.
package apperr

import "errors"

var (
	// ErrNotFound marks a note or folder that no longer exists in the
	// external source.
	ErrNotFound = errors.New("not found")

	// ErrSourceUnavailable marks a failure to reach the scripting bridge
	// itself: osascript missing, call timed out, or access denied.
	ErrSourceUnavailable = errors.New("note source unavailable")

	// ErrStore marks a vector store failure beyond the handled
	// migration-on-open case.
	ErrStore = errors.New("vector store error")
)
