// Package split implements the tab-scoped split-pane layout engine.
//
// Each tab's display area is divided by a strictly binary tree of panels:
// a node is either a leaf panel (hosting at most one session) or a split
// with exactly two children. A per-tab Layout composes the tree with focus
// and color bookkeeping, and a Manager owns one Layout per tab plus the
// shared ColorPool that gives split containers distinct border colors.
//
// The engine performs no I/O and no locking. A Layout is exclusively owned
// by its tab's controller; the ColorPool is shared across tabs and must be
// serialized by its owner if touched from more than one goroutine.
package split

import "github.com/google/uuid"

// PanelID uniquely identifies a leaf panel within a layout.
// IDs are minted when a leaf is created and persist while the tree
// restructures around the panel.
type PanelID string

// NewPanelID mints a fresh panel ID.
func NewPanelID() PanelID {
	return PanelID(uuid.NewString())
}

// SessionID references a session owned by an external registry.
// The layout engine only records occupancy; it never starts or
// terminates sessions. The zero value means "no session".
type SessionID string

// NewSessionID mints a fresh session ID.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// TabID identifies a tab and its associated layout (if any).
type TabID string

// NewTabID mints a fresh tab ID.
func NewTabID() TabID {
	return TabID(uuid.NewString())
}

// ColorID is an index into the split container color palette. It is not
// globally unique: when the palette is exhausted the pool hands out an
// already-allocated index rather than failing.
type ColorID int

// Direction is the axis along which a split divides its panel.
type Direction int

const (
	// Horizontal divides a panel into top and bottom halves.
	Horizontal Direction = iota
	// Vertical divides a panel into left and right halves.
	Vertical
)

// String returns "horizontal" or "vertical".
func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}
