package split

// Split position bounds. Position is the fraction of space given to the
// first child.
const (
	DefaultSplitPosition = 0.5
	MinSplitPosition     = 0.0
	MaxSplitPosition     = 1.0
)

// Node is one node of the panel tree: either a *Leaf or a *Split. The tree
// is strictly binary and never aliased; traversal is always root-to-leaf,
// and every structural mutation returns the (possibly new) subtree so the
// parent can reassign its own child slot.
//
// The interface is sealed to the two implementations in this package.
type Node interface {
	// PanelCount returns the number of leaf panels in the subtree (>= 1).
	PanelCount() int
	// Depth returns 0 for a leaf, 1 + the deeper child for a split.
	Depth() int
	// FirstPanel returns the leftmost/topmost leaf, following first links.
	FirstPanel() *Leaf
	// FindPanel returns the leaf with the given ID, first subtree before
	// second, or nil if absent.
	FindPanel(id PanelID) *Leaf
	// InsertSplit replaces the leaf with the given ID by a split whose
	// first child is that leaf (identity and session unchanged) and whose
	// second child is a new empty leaf. Returns the possibly new subtree,
	// the new leaf's ID, and whether the target was found.
	InsertSplit(id PanelID, dir Direction) (Node, PanelID, bool)
	// RemovePanel removes the leaf with the given ID, promoting its
	// sibling in place of the parent split. Returns the possibly new
	// subtree and a three-way result; see RemoveResult.
	RemovePanel(id PanelID) (Node, RemoveResult)
	// UpdateSplitPosition sets the clamped position of the split whose
	// first subtree's leftmost panel has the given ID. Returns whether a
	// matching split was found.
	UpdateSplitPosition(firstID PanelID, position float64) bool

	appendPanelIDs(ids []PanelID) []PanelID
}

// PanelIDs returns all panel IDs in the subtree in pre-order (entire first
// subtree, then entire second). This is the canonical ordering used for
// display and focus rotation.
func PanelIDs(n Node) []PanelID {
	return n.appendPanelIDs(nil)
}

// RemoveOutcome classifies the result of Node.RemovePanel.
type RemoveOutcome int

const (
	// RemoveNotFound means no panel with the given ID exists in the subtree.
	RemoveNotFound RemoveOutcome = iota
	// Removed means the panel was removed and its sibling promoted; the
	// returned subtree already reflects the restructuring.
	Removed
	// RemovedSelf means the receiving node itself was the match. A node
	// cannot represent "zero panels", so the caller above decides how to
	// take the panel out (only the owning Layout may drop the whole tree).
	RemovedSelf
)

// RemoveResult is the outcome of a removal plus the session the removed
// panel held, if any.
type RemoveResult struct {
	Outcome RemoveOutcome
	Session SessionID
}

// IsRemoved reports whether a panel was actually found and taken out.
func (r RemoveResult) IsRemoved() bool {
	return r.Outcome == Removed || r.Outcome == RemovedSelf
}

// Leaf is an atomic display panel hosting at most one session.
type Leaf struct {
	ID      PanelID
	Session SessionID // empty when the panel is unoccupied
}

// NewLeaf creates an empty leaf with a fresh ID.
func NewLeaf() *Leaf {
	return &Leaf{ID: NewPanelID()}
}

// NewLeafWithSession creates a leaf with a fresh ID hosting the session.
func NewLeafWithSession(session SessionID) *Leaf {
	return &Leaf{ID: NewPanelID(), Session: session}
}

// Occupied reports whether the panel hosts a session.
func (l *Leaf) Occupied() bool {
	return l.Session != ""
}

// PanelCount implements Node.
func (l *Leaf) PanelCount() int { return 1 }

// Depth implements Node.
func (l *Leaf) Depth() int { return 0 }

// FirstPanel implements Node.
func (l *Leaf) FirstPanel() *Leaf { return l }

// FindPanel implements Node.
func (l *Leaf) FindPanel(id PanelID) *Leaf {
	if l.ID == id {
		return l
	}
	return nil
}

// InsertSplit implements Node. This is the only way the tree grows.
func (l *Leaf) InsertSplit(id PanelID, dir Direction) (Node, PanelID, bool) {
	if l.ID != id {
		return l, "", false
	}
	second := NewLeaf()
	return NewSplit(dir, l, second), second.ID, true
}

// RemovePanel implements Node. A lone leaf cannot restructure itself, so a
// match reports RemovedSelf for the parent (or the owning Layout) to handle.
func (l *Leaf) RemovePanel(id PanelID) (Node, RemoveResult) {
	if l.ID == id {
		return l, RemoveResult{Outcome: RemovedSelf, Session: l.Session}
	}
	return l, RemoveResult{Outcome: RemoveNotFound}
}

// UpdateSplitPosition implements Node.
func (l *Leaf) UpdateSplitPosition(PanelID, float64) bool { return false }

func (l *Leaf) appendPanelIDs(ids []PanelID) []PanelID {
	return append(ids, l.ID)
}

// Split divides its area between exactly two children along a direction.
// Children are exclusively owned; neither is ever nil.
type Split struct {
	Direction Direction
	First     Node // top for horizontal, left for vertical
	Second    Node // bottom for horizontal, right for vertical
	Position  float64
}

// NewSplit creates a split with the default 50/50 position.
func NewSplit(dir Direction, first, second Node) *Split {
	return &Split{Direction: dir, First: first, Second: second, Position: DefaultSplitPosition}
}

// NewSplitAt creates a split with an explicit position.
func NewSplitAt(dir Direction, first, second Node, position float64) (*Split, error) {
	if position < MinSplitPosition || position > MaxSplitPosition {
		return nil, ErrInvalidPosition
	}
	return &Split{Direction: dir, First: first, Second: second, Position: position}, nil
}

// PanelCount implements Node.
func (s *Split) PanelCount() int {
	return s.First.PanelCount() + s.Second.PanelCount()
}

// Depth implements Node.
func (s *Split) Depth() int {
	d := s.First.Depth()
	if d2 := s.Second.Depth(); d2 > d {
		d = d2
	}
	return 1 + d
}

// FirstPanel implements Node.
func (s *Split) FirstPanel() *Leaf {
	return s.First.FirstPanel()
}

// FindPanel implements Node.
func (s *Split) FindPanel(id PanelID) *Leaf {
	if p := s.First.FindPanel(id); p != nil {
		return p
	}
	return s.Second.FindPanel(id)
}

// InsertSplit implements Node.
func (s *Split) InsertSplit(id PanelID, dir Direction) (Node, PanelID, bool) {
	if first, newID, ok := s.First.InsertSplit(id, dir); ok {
		s.First = first
		return s, newID, true
	}
	if second, newID, ok := s.Second.InsertSplit(id, dir); ok {
		s.Second = second
		return s, newID, true
	}
	return s, "", false
}

// RemovePanel implements Node. A matching direct leaf child is removed by
// promoting the untouched sibling to take this split's place, so a split is
// never left with a single child.
func (s *Split) RemovePanel(id PanelID) (Node, RemoveResult) {
	if leaf, ok := s.First.(*Leaf); ok && leaf.ID == id {
		return s.Second, RemoveResult{Outcome: Removed, Session: leaf.Session}
	}
	if leaf, ok := s.Second.(*Leaf); ok && leaf.ID == id {
		return s.First, RemoveResult{Outcome: Removed, Session: leaf.Session}
	}
	if first, res := s.First.RemovePanel(id); res.Outcome != RemoveNotFound {
		s.First = first
		return s, res
	}
	second, res := s.Second.RemovePanel(id)
	if res.Outcome != RemoveNotFound {
		s.Second = second
	}
	return s, res
}

// UpdateSplitPosition implements Node. Used to persist a user-dragged
// divider: the split is identified by the leftmost panel of its first
// subtree, which is unique because panel IDs are unique within a tree.
func (s *Split) UpdateSplitPosition(firstID PanelID, position float64) bool {
	clamped := clampPosition(position)
	if s.First.FirstPanel().ID == firstID {
		s.Position = clamped
		return true
	}
	return s.First.UpdateSplitPosition(firstID, clamped) ||
		s.Second.UpdateSplitPosition(firstID, clamped)
}

func (s *Split) appendPanelIDs(ids []PanelID) []PanelID {
	return s.Second.appendPanelIDs(s.First.appendPanelIDs(ids))
}

// parentSplitOf returns the split whose direct leaf child has the given
// ID, or nil. Unlike the first-leftmost addressing of UpdateSplitPosition,
// this is unambiguous in nested trees: an outer split and its first inner
// split share a leftmost panel but never a direct leaf child.
func parentSplitOf(n Node, id PanelID) *Split {
	s, ok := n.(*Split)
	if !ok {
		return nil
	}
	if leaf, ok := s.First.(*Leaf); ok && leaf.ID == id {
		return s
	}
	if leaf, ok := s.Second.(*Leaf); ok && leaf.ID == id {
		return s
	}
	if found := parentSplitOf(s.First, id); found != nil {
		return found
	}
	return parentSplitOf(s.Second, id)
}

func clampPosition(p float64) float64 {
	if p < MinSplitPosition {
		return MinSplitPosition
	}
	if p > MaxSplitPosition {
		return MaxSplitPosition
	}
	return p
}
