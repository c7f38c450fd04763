package split

import (
	"errors"
	"testing"
)

func TestNewLayout(t *testing.T) {
	m := NewLayout()
	if m.IsSplit() {
		t.Error("IsSplit() = true for new layout")
	}
	if m.PanelCount() != 1 {
		t.Errorf("PanelCount() = %d, want 1", m.PanelCount())
	}
	if m.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", m.Depth())
	}
	if m.FocusedPanel() == "" {
		t.Error("new layout has no focused panel")
	}
	if m.FocusedPanel() != m.PanelIDs()[0] {
		t.Error("initial focus is not on the single panel")
	}
	if _, ok := m.Color(); ok {
		t.Error("new layout has a color assigned")
	}
}

func TestNewLayoutWithSession(t *testing.T) {
	session := NewSessionID()
	m := NewLayoutWithSession(session)
	if got := m.PanelSession(m.PanelIDs()[0]); got != session {
		t.Errorf("PanelSession() = %s, want %s", got, session)
	}
}

func TestSplitFromUnsplit(t *testing.T) {
	session := NewSessionID()
	m := NewLayoutWithSession(session)
	originalID := m.PanelIDs()[0]

	newID, err := m.Split(Vertical)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if !m.IsSplit() {
		t.Error("IsSplit() = false after split")
	}
	if m.PanelCount() != 2 {
		t.Errorf("PanelCount() = %d, want 2", m.PanelCount())
	}
	if m.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", m.Depth())
	}
	// Original identity and session are preserved on the first side.
	if got := m.PanelSession(originalID); got != session {
		t.Errorf("original panel session = %s, want %s", got, session)
	}
	if got := m.PanelSession(newID); got != "" {
		t.Errorf("new panel session = %s, want empty", got)
	}
	// Focus is not moved by split.
	if m.FocusedPanel() != originalID {
		t.Errorf("FocusedPanel() = %s, want %s", m.FocusedPanel(), originalID)
	}
	if m.FirstPanel().ID != originalID {
		t.Errorf("FirstPanel().ID = %s, want %s", m.FirstPanel().ID, originalID)
	}
}

func TestSplitDeeperTargetsFocusedPanel(t *testing.T) {
	m := NewLayout()
	p2, err := m.Split(Vertical)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if err := m.SetFocus(p2); err != nil {
		t.Fatalf("SetFocus() error = %v", err)
	}

	p3, err := m.Split(Horizontal)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if m.PanelCount() != 3 {
		t.Errorf("PanelCount() = %d, want 3", m.PanelCount())
	}
	if m.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", m.Depth())
	}
	if !m.ContainsPanel(p3) {
		t.Error("ContainsPanel(new) = false")
	}
}

func TestSplitWithoutFocusFails(t *testing.T) {
	m := NewLayout()
	m.focused = ""

	_, err := m.Split(Vertical)
	if !errors.Is(err, ErrNoFocusedPanel) {
		t.Errorf("Split() error = %v, want ErrNoFocusedPanel", err)
	}
	if m.IsSplit() || m.PanelCount() != 1 {
		t.Error("failed Split mutated the layout")
	}
}

func TestSetFocusRejectsUnknownPanel(t *testing.T) {
	m := NewLayout()
	before := m.FocusedPanel()

	err := m.SetFocus(NewPanelID())
	if !errors.Is(err, ErrPanelNotFound) {
		t.Errorf("SetFocus() error = %v, want ErrPanelNotFound", err)
	}
	if m.FocusedPanel() != before {
		t.Error("failed SetFocus moved focus")
	}
}

func TestPlaceInPanel(t *testing.T) {
	m := NewLayout()
	id := m.PanelIDs()[0]

	s1 := NewSessionID()
	res, err := m.PlaceInPanel(id, s1)
	if err != nil {
		t.Fatalf("PlaceInPanel() error = %v", err)
	}
	if res.IsEviction() {
		t.Errorf("placement into empty panel reported eviction of %s", res.Evicted)
	}
	if got := m.PanelSession(id); got != s1 {
		t.Errorf("PanelSession() = %s, want %s", got, s1)
	}

	// Placing into an occupied panel evicts the previous session.
	s2 := NewSessionID()
	res, err = m.PlaceInPanel(id, s2)
	if err != nil {
		t.Fatalf("PlaceInPanel() error = %v", err)
	}
	if !res.IsEviction() || res.Evicted != s1 {
		t.Errorf("eviction = %+v, want evicted %s", res, s1)
	}
	if got := m.PanelSession(id); got != s2 {
		t.Errorf("PanelSession() = %s, want %s", got, s2)
	}
}

func TestPlaceInUnknownPanelFails(t *testing.T) {
	m := NewLayout()
	_, err := m.PlaceInPanel(NewPanelID(), NewSessionID())
	if !errors.Is(err, ErrPanelNotFound) {
		t.Errorf("PlaceInPanel() error = %v, want ErrPanelNotFound", err)
	}
}

func TestPlaceDoesNotAffectOtherPanels(t *testing.T) {
	s1 := NewSessionID()
	m := NewLayoutWithSession(s1)
	p1 := m.PanelIDs()[0]
	p2, _ := m.Split(Vertical)

	s2 := NewSessionID()
	if _, err := m.PlaceInPanel(p2, s2); err != nil {
		t.Fatalf("PlaceInPanel() error = %v", err)
	}
	if m.PanelSession(p1) != s1 || m.PanelSession(p2) != s2 {
		t.Error("placement leaked into a different panel")
	}
}

func TestRemoveLastPanelFails(t *testing.T) {
	m := NewLayout()
	id := m.PanelIDs()[0]

	_, err := m.RemovePanel(id)
	if !errors.Is(err, ErrCannotRemoveLastPanel) {
		t.Errorf("RemovePanel() error = %v, want ErrCannotRemoveLastPanel", err)
	}
	if m.PanelCount() != 1 {
		t.Errorf("PanelCount() after failed remove = %d, want 1", m.PanelCount())
	}
}

func TestRemoveCollapsesToUnsplit(t *testing.T) {
	m := NewLayout()
	p2, _ := m.Split(Vertical)

	removed, err := m.RemovePanel(p2)
	if err != nil {
		t.Fatalf("RemovePanel() error = %v", err)
	}
	if removed != "" {
		t.Errorf("removed session = %s, want empty", removed)
	}
	if m.IsSplit() {
		t.Error("IsSplit() = true after collapse")
	}
	if m.PanelCount() != 1 {
		t.Errorf("PanelCount() = %d, want 1", m.PanelCount())
	}
}

func TestRemoveReturnsHeldSession(t *testing.T) {
	session := NewSessionID()
	m := NewLayoutWithSession(session)
	p1 := m.PanelIDs()[0]
	if _, err := m.Split(Vertical); err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	removed, err := m.RemovePanel(p1)
	if err != nil {
		t.Fatalf("RemovePanel() error = %v", err)
	}
	if removed != session {
		t.Errorf("removed session = %s, want %s", removed, session)
	}
}

func TestRemoveFocusedPanelRetargetsFocus(t *testing.T) {
	t.Run("collapse retargets to survivor", func(t *testing.T) {
		m := NewLayout()
		p1 := m.PanelIDs()[0]
		p2, _ := m.Split(Vertical)
		if err := m.SetFocus(p2); err != nil {
			t.Fatalf("SetFocus() error = %v", err)
		}

		if _, err := m.RemovePanel(p2); err != nil {
			t.Fatalf("RemovePanel() error = %v", err)
		}
		if m.FocusedPanel() != p1 {
			t.Errorf("FocusedPanel() = %s, want %s", m.FocusedPanel(), p1)
		}
	})

	t.Run("restructure retargets to leftmost", func(t *testing.T) {
		m := NewLayout()
		p1 := m.PanelIDs()[0]
		p2, _ := m.Split(Vertical)
		if err := m.SetFocus(p2); err != nil {
			t.Fatalf("SetFocus() error = %v", err)
		}
		p3, _ := m.Split(Horizontal)
		if err := m.SetFocus(p3); err != nil {
			t.Fatalf("SetFocus() error = %v", err)
		}

		if _, err := m.RemovePanel(p3); err != nil {
			t.Fatalf("RemovePanel() error = %v", err)
		}
		// Focus moves to the tree's leftmost panel, not the sibling.
		if m.FocusedPanel() != p1 {
			t.Errorf("FocusedPanel() = %s, want leftmost %s", m.FocusedPanel(), p1)
		}
	})

	t.Run("unfocused removal leaves focus alone", func(t *testing.T) {
		m := NewLayout()
		p1 := m.PanelIDs()[0]
		p2, _ := m.Split(Vertical)

		if _, err := m.RemovePanel(p2); err != nil {
			t.Fatalf("RemovePanel() error = %v", err)
		}
		if m.FocusedPanel() != p1 {
			t.Errorf("FocusedPanel() = %s, want %s", m.FocusedPanel(), p1)
		}
	})
}

func TestRemoveUnknownPanelLeavesLayoutUnchanged(t *testing.T) {
	m := NewLayout()
	if _, err := m.Split(Vertical); err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	idsBefore := m.PanelIDs()
	focusBefore := m.FocusedPanel()

	_, err := m.RemovePanel(NewPanelID())
	if !errors.Is(err, ErrPanelNotFound) {
		t.Errorf("RemovePanel() error = %v, want ErrPanelNotFound", err)
	}
	idsAfter := m.PanelIDs()
	if len(idsAfter) != len(idsBefore) {
		t.Fatalf("panel count changed on failed remove: %d -> %d", len(idsBefore), len(idsAfter))
	}
	for i := range idsBefore {
		if idsAfter[i] != idsBefore[i] {
			t.Errorf("panel order changed on failed remove at %d", i)
		}
	}
	if m.FocusedPanel() != focusBefore {
		t.Error("focus changed on failed remove")
	}
}

func TestColorAccessors(t *testing.T) {
	m := NewLayout()
	if _, ok := m.Color(); ok {
		t.Error("Color() ok = true for new layout")
	}
	m.SetColor(3)
	if c, ok := m.Color(); !ok || c != 3 {
		t.Errorf("Color() = %d, %v, want 3, true", c, ok)
	}
	m.ClearColor()
	if _, ok := m.Color(); ok {
		t.Error("Color() ok = true after ClearColor")
	}
}

func TestSetSplitPosition(t *testing.T) {
	m := NewLayout()
	p1 := m.PanelIDs()[0]

	if err := m.SetSplitPosition(p1, 0.5); !errors.Is(err, ErrPanelNotFound) {
		t.Errorf("SetSplitPosition() on unsplit layout error = %v, want ErrPanelNotFound", err)
	}

	if _, err := m.Split(Vertical); err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if err := m.SetSplitPosition(p1, 0.3); err != nil {
		t.Fatalf("SetSplitPosition() error = %v", err)
	}
	if got := m.Root().(*Split).Position; got != 0.3 {
		t.Errorf("Position = %v, want 0.3", got)
	}
	if err := m.SetSplitPosition(NewPanelID(), 0.3); !errors.Is(err, ErrPanelNotFound) {
		t.Errorf("SetSplitPosition(unknown) error = %v, want ErrPanelNotFound", err)
	}
}

func TestAdjustSplitPosition(t *testing.T) {
	m := NewLayout()
	p1 := m.PanelIDs()[0]

	if err := m.AdjustSplitPosition(p1, 0.25); !errors.Is(err, ErrPanelNotFound) {
		t.Errorf("AdjustSplitPosition() on unsplit layout error = %v, want ErrPanelNotFound", err)
	}

	if _, err := m.Split(Vertical); err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if err := m.AdjustSplitPosition(p1, 0.25); err != nil {
		t.Fatalf("AdjustSplitPosition() error = %v", err)
	}
	if got := m.Root().(*Split).Position; got != 0.75 {
		t.Errorf("Position = %v, want 0.75", got)
	}

	if err := m.AdjustSplitPosition(p1, 2.0); err != nil {
		t.Fatalf("AdjustSplitPosition() error = %v", err)
	}
	if got := m.Root().(*Split).Position; got != MaxSplitPosition {
		t.Errorf("Position = %v, want clamped to %v", got, MaxSplitPosition)
	}

	if err := m.AdjustSplitPosition(NewPanelID(), 0.25); !errors.Is(err, ErrPanelNotFound) {
		t.Errorf("AdjustSplitPosition(unknown) error = %v, want ErrPanelNotFound", err)
	}
}

// In a nested tree the outer split and its first inner split share a
// leftmost panel, so addressing by enclosing panel must pick the inner
// split, not the outer one.
func TestAdjustSplitPositionNestedTargetsInnerSplit(t *testing.T) {
	m := NewLayout()
	p0 := m.PanelIDs()[0]
	if _, err := m.Split(Vertical); err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	p2, err := m.Split(Horizontal)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	// Tree: outer(inner(p0, p2), p1); both splits start at 0.5.

	if err := m.AdjustSplitPosition(p2, 0.25); err != nil {
		t.Fatalf("AdjustSplitPosition() error = %v", err)
	}

	outer := m.Root().(*Split)
	inner := outer.First.(*Split)
	if inner.Position != 0.75 {
		t.Errorf("inner Position = %v, want 0.75", inner.Position)
	}
	if outer.Position != 0.5 {
		t.Errorf("outer Position = %v, want 0.5 (untouched)", outer.Position)
	}

	// The shared leftmost panel is a direct child of the inner split only.
	if err := m.AdjustSplitPosition(p0, -0.5); err != nil {
		t.Fatalf("AdjustSplitPosition() error = %v", err)
	}
	if inner.Position != 0.25 {
		t.Errorf("inner Position = %v, want 0.25", inner.Position)
	}
	if outer.Position != 0.5 {
		t.Errorf("outer Position = %v, want 0.5 (untouched)", outer.Position)
	}
}

func TestPanelForSession(t *testing.T) {
	session := NewSessionID()
	m := NewLayoutWithSession(session)
	p1 := m.PanelIDs()[0]

	got, err := m.PanelForSession(session)
	if err != nil {
		t.Fatalf("PanelForSession() error = %v", err)
	}
	if got != p1 {
		t.Errorf("PanelForSession() = %s, want %s", got, p1)
	}

	if _, err := m.PanelForSession(NewSessionID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("PanelForSession(unknown) error = %v, want ErrSessionNotFound", err)
	}
}

// Full lifecycle: split, place, remove, collapse.
func TestLayoutScenario(t *testing.T) {
	s1 := NewSessionID()
	m := NewLayoutWithSession(s1)
	p1 := m.PanelIDs()[0]

	p2, err := m.Split(Vertical)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if m.PanelCount() != 2 {
		t.Fatalf("PanelCount() = %d, want 2", m.PanelCount())
	}
	if m.PanelSession(p1) != s1 {
		t.Errorf("original panel lost its session")
	}
	if m.PanelSession(p2) != "" {
		t.Errorf("new panel is not empty")
	}

	s2 := NewSessionID()
	res, err := m.PlaceInPanel(p2, s2)
	if err != nil {
		t.Fatalf("PlaceInPanel() error = %v", err)
	}
	if res.IsEviction() {
		t.Errorf("placement reported eviction of %s", res.Evicted)
	}

	removed, err := m.RemovePanel(p2)
	if err != nil {
		t.Fatalf("RemovePanel() error = %v", err)
	}
	if removed != s2 {
		t.Errorf("removed session = %s, want %s", removed, s2)
	}
	if m.IsSplit() {
		t.Error("layout still split after removing second panel")
	}
}

// Structural invariants hold across a randomized-ish sequence of operations.
func TestInvariantsAcrossOperations(t *testing.T) {
	m := NewLayout()
	check := func(step string) {
		t.Helper()
		if m.PanelCount() < 1 {
			t.Fatalf("%s: PanelCount() = %d, want >= 1", step, m.PanelCount())
		}
		if m.IsSplit() != (m.Root() != nil) {
			t.Fatalf("%s: IsSplit() disagrees with Root()", step)
		}
		if !m.IsSplit() && m.PanelCount() != 1 {
			t.Fatalf("%s: unsplit layout has %d panels", step, m.PanelCount())
		}
		if f := m.FocusedPanel(); f != "" && !m.ContainsPanel(f) {
			t.Fatalf("%s: focused panel %s not in layout", step, f)
		}
		seen := make(map[PanelID]bool)
		for _, id := range m.PanelIDs() {
			if seen[id] {
				t.Fatalf("%s: duplicate panel ID %s", step, id)
			}
			seen[id] = true
			if !m.ContainsPanel(id) {
				t.Fatalf("%s: enumerated panel %s fails membership", step, id)
			}
		}
	}

	check("new")
	ids := []PanelID{m.PanelIDs()[0]}
	for i := 0; i < 5; i++ {
		dir := Vertical
		if i%2 == 0 {
			dir = Horizontal
		}
		if err := m.SetFocus(ids[i%len(ids)]); err != nil {
			t.Fatalf("SetFocus() error = %v", err)
		}
		id, err := m.Split(dir)
		if err != nil {
			t.Fatalf("Split() error = %v", err)
		}
		ids = append(ids, id)
		check("after split")
	}
	for m.PanelCount() > 1 {
		target := m.PanelIDs()[m.PanelCount()-1]
		if _, err := m.RemovePanel(target); err != nil {
			t.Fatalf("RemovePanel() error = %v", err)
		}
		check("after remove")
	}
}
