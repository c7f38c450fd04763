package ui

// AppMode identifies which top-level surface has input focus.
type AppMode int

const (
	// ModeWorkspace is the default mode: keys drive the split layout.
	ModeWorkspace AppMode = iota
	// ModeSessionPicker is active while the detached-session picker overlay is open.
	ModeSessionPicker
	// ModeTerminal is active while a local shell overlay has the keyboard.
	ModeTerminal
)

// String returns a short mode name for status display.
func (m AppMode) String() string {
	switch m {
	case ModeSessionPicker:
		return "picker"
	case ModeTerminal:
		return "terminal"
	default:
		return "workspace"
	}
}
