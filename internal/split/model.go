package split

import "fmt"

// Layout is the per-tab layout state machine. It composes the panel tree
// with focus tracking and color bookkeeping, and is the one place the
// "at least one panel" invariant is finally enforced: while unsplit the
// panel lives in a fallback leaf and the root is nil.
//
// Every identifier-taking operation that fails leaves the layout completely
// unchanged.
type Layout struct {
	root     Node    // nil = single panel, no splits
	color    ColorID // container color, valid only when hasColor
	hasColor bool
	focused  PanelID // empty = focus externally cleared
	single   Leaf    // the single panel used when not split
}

// NewLayout creates a layout with one empty panel, which is focused.
func NewLayout() *Layout {
	single := Leaf{ID: NewPanelID()}
	return &Layout{single: single, focused: single.ID}
}

// NewLayoutWithSession creates a layout whose initial panel hosts the
// session. Used when a split layout is grown out of an existing tab.
func NewLayoutWithSession(session SessionID) *Layout {
	single := Leaf{ID: NewPanelID(), Session: session}
	return &Layout{single: single, focused: single.ID}
}

// IsSplit reports whether the layout has been divided into two or more
// panels. Holds exactly when a root tree is present.
func (m *Layout) IsSplit() bool {
	return m.root != nil
}

// PanelCount returns the number of panels in the layout, always >= 1.
func (m *Layout) PanelCount() int {
	if m.root == nil {
		return 1
	}
	return m.root.PanelCount()
}

// PanelIDs returns all panel IDs in pre-order.
func (m *Layout) PanelIDs() []PanelID {
	if m.root == nil {
		return []PanelID{m.single.ID}
	}
	return PanelIDs(m.root)
}

// Depth returns the depth of the panel tree; 0 while unsplit.
func (m *Layout) Depth() int {
	if m.root == nil {
		return 0
	}
	return m.root.Depth()
}

// Root returns the panel tree, or nil while unsplit.
func (m *Layout) Root() Node {
	return m.root
}

// FirstPanel returns a copy of the leftmost/topmost panel.
func (m *Layout) FirstPanel() Leaf {
	if m.root == nil {
		return m.single
	}
	return *m.root.FirstPanel()
}

// Color returns the container color, if one has been assigned.
func (m *Layout) Color() (ColorID, bool) {
	return m.color, m.hasColor
}

// SetColor assigns the container color. The layout never talks to the
// ColorPool itself; allocation and release belong to the owning Manager.
func (m *Layout) SetColor(c ColorID) {
	m.color = c
	m.hasColor = true
}

// ClearColor removes the container color.
func (m *Layout) ClearColor() {
	m.color = 0
	m.hasColor = false
}

// FocusedPanel returns the ID of the focused panel, or empty if focus has
// been cleared.
func (m *Layout) FocusedPanel() PanelID {
	return m.focused
}

// SetFocus moves focus to the given panel.
func (m *Layout) SetFocus(id PanelID) error {
	if !m.ContainsPanel(id) {
		return fmt.Errorf("%w: %s", ErrPanelNotFound, id)
	}
	m.focused = id
	return nil
}

// ContainsPanel reports whether the layout has a panel with the given ID.
func (m *Layout) ContainsPanel(id PanelID) bool {
	if m.root == nil {
		return m.single.ID == id
	}
	return m.root.FindPanel(id) != nil
}

// PanelSession returns the session hosted by the panel, or empty if the
// panel is empty or unknown.
func (m *Layout) PanelSession(id PanelID) SessionID {
	if m.root == nil {
		if m.single.ID == id {
			return m.single.Session
		}
		return ""
	}
	if p := m.root.FindPanel(id); p != nil {
		return p.Session
	}
	return ""
}

// PanelForSession returns the panel currently hosting the session.
func (m *Layout) PanelForSession(session SessionID) (PanelID, error) {
	for _, id := range m.PanelIDs() {
		if session != "" && m.PanelSession(id) == session {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSessionNotFound, session)
}

// Split divides the focused panel in the given direction. The focused
// panel keeps its identity and session as the first child; the second
// child is a new empty panel whose ID is returned. Focus does not move.
func (m *Layout) Split(dir Direction) (PanelID, error) {
	if m.focused == "" {
		return "", ErrNoFocusedPanel
	}
	if m.root == nil {
		// First split: the single panel becomes the tree's first child.
		second := NewLeaf()
		first := &Leaf{ID: m.single.ID, Session: m.single.Session}
		m.root = NewSplit(dir, first, second)
		return second.ID, nil
	}
	root, newID, ok := m.root.InsertSplit(m.focused, dir)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPanelNotFound, m.focused)
	}
	m.root = root
	return newID, nil
}

// DropResult reports what happened when a session was placed in a panel.
type DropResult struct {
	// Evicted is the session displaced by the placement, empty if the
	// panel was empty. Eviction is advisory: the caller decides the
	// displaced session's fate.
	Evicted SessionID
}

// IsEviction reports whether a prior session was displaced.
func (r DropResult) IsEviction() bool {
	return r.Evicted != ""
}

// PlaceInPanel puts the session in the panel, unconditionally overwriting
// any session already there and reporting it so the caller can relocate or
// close it. The layout never merges sessions.
func (m *Layout) PlaceInPanel(id PanelID, session SessionID) (DropResult, error) {
	panel, err := m.findPanel(id)
	if err != nil {
		return DropResult{}, err
	}
	result := DropResult{Evicted: panel.Session}
	panel.Session = session
	return result, nil
}

// RemovePanel removes the panel, promoting its sibling, and returns the
// session it held (empty if none). Removing the sole remaining panel fails
// with ErrCannotRemoveLastPanel; the layout never reaches zero panels.
//
// When the tree collapses to a single surviving leaf the layout reverts to
// unsplit state. If the removed panel was focused, focus moves to the
// tree's new leftmost panel.
func (m *Layout) RemovePanel(id PanelID) (SessionID, error) {
	if m.root == nil {
		if m.single.ID == id {
			return "", ErrCannotRemoveLastPanel
		}
		return "", fmt.Errorf("%w: %s", ErrPanelNotFound, id)
	}
	root, res := m.root.RemovePanel(id)
	switch res.Outcome {
	case Removed:
		m.root = root
	case RemovedSelf:
		// The root itself was the match: only one panel left.
		return "", ErrCannotRemoveLastPanel
	default:
		return "", fmt.Errorf("%w: %s", ErrPanelNotFound, id)
	}

	if leaf, ok := m.root.(*Leaf); ok {
		// Down to one panel: collapse back to unsplit state.
		m.single = Leaf{ID: leaf.ID, Session: leaf.Session}
		m.root = nil
		if m.focused == id {
			m.focused = m.single.ID
		}
	} else if m.focused == id {
		m.focused = m.root.FirstPanel().ID
	}
	return res.Session, nil
}

// SetSplitPosition persists a dragged divider: it overwrites the clamped
// position of the split whose first subtree's leftmost panel matches the
// given ID.
func (m *Layout) SetSplitPosition(firstID PanelID, position float64) error {
	if m.root == nil || !m.root.UpdateSplitPosition(firstID, position) {
		return fmt.Errorf("%w: %s", ErrPanelNotFound, firstID)
	}
	return nil
}

// AdjustSplitPosition nudges the divider of the split directly enclosing
// the panel by delta, clamping the result. Addressing by the enclosing
// panel keeps nested dividers distinct where first-leftmost addressing
// would resolve to the outermost split.
func (m *Layout) AdjustSplitPosition(id PanelID, delta float64) error {
	if m.root == nil {
		return fmt.Errorf("%w: %s", ErrPanelNotFound, id)
	}
	s := parentSplitOf(m.root, id)
	if s == nil {
		return fmt.Errorf("%w: %s", ErrPanelNotFound, id)
	}
	s.Position = clampPosition(s.Position + delta)
	return nil
}

func (m *Layout) findPanel(id PanelID) (*Leaf, error) {
	if m.root == nil {
		if m.single.ID == id {
			return &m.single, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrPanelNotFound, id)
	}
	if p := m.root.FindPanel(id); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrPanelNotFound, id)
}
