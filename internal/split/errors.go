package split

import "errors"

// Errors returned by layout operations. All are local and recoverable; a
// failing call leaves the layout completely unchanged.
var (
	// ErrPanelNotFound reports an identifier absent from the current tree.
	ErrPanelNotFound = errors.New("panel not found")

	// ErrNoFocusedPanel reports a split attempted while focus is unset.
	// Defensive: focus is normally always valid.
	ErrNoFocusedPanel = errors.New("no panel is currently focused")

	// ErrCannotRemoveLastPanel guards the "panel count >= 1" invariant.
	ErrCannotRemoveLastPanel = errors.New("cannot remove the last panel")

	// ErrInvalidPosition reports a split position outside [0, 1].
	ErrInvalidPosition = errors.New("split position must be between 0.0 and 1.0")

	// ErrSessionNotFound reports a session identifier unknown to the layout.
	ErrSessionNotFound = errors.New("session not found")
)
