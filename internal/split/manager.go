package split

// Manager owns one Layout per open tab and the ColorPool shared across
// them. It is the component that actually wires colors to layouts: a color
// is allocated when a tab first needs visual distinction and released when
// the tab closes or reverts to a single panel.
//
// The Manager assumes single-threaded access from the UI event loop.
type Manager struct {
	layouts map[TabID]*Layout
	pool    *ColorPool
}

// NewManager creates a manager with an empty color pool.
func NewManager() *Manager {
	return &Manager{
		layouts: make(map[TabID]*Layout),
		pool:    NewColorPool(),
	}
}

// GetOrCreate returns the tab's layout, creating an empty one if the tab
// has none yet.
func (g *Manager) GetOrCreate(tab TabID) *Layout {
	if m, ok := g.layouts[tab]; ok {
		return m
	}
	m := NewLayout()
	g.layouts[tab] = m
	return m
}

// GetOrCreateWithSession is GetOrCreate, but a newly created layout starts
// with the session in its initial panel.
func (g *Manager) GetOrCreateWithSession(tab TabID, session SessionID) *Layout {
	if m, ok := g.layouts[tab]; ok {
		return m
	}
	m := NewLayoutWithSession(session)
	g.layouts[tab] = m
	return m
}

// Get returns the tab's layout, or nil if the tab has none.
func (g *Manager) Get(tab TabID) *Layout {
	return g.layouts[tab]
}

// Remove discards the tab's layout when the tab closes, returning its
// color to the pool. Returns the removed layout, or nil if the tab had
// none.
func (g *Manager) Remove(tab TabID) *Layout {
	m, ok := g.layouts[tab]
	if !ok {
		return nil
	}
	delete(g.layouts, tab)
	if c, ok := m.Color(); ok {
		g.pool.Release(c)
	}
	return m
}

// AllocateColor assigns a pool color to the tab's layout, typically on the
// first split. Idempotent: a layout that already has a color keeps it.
// Returns false if the tab has no layout.
func (g *Manager) AllocateColor(tab TabID) (ColorID, bool) {
	m, ok := g.layouts[tab]
	if !ok {
		return 0, false
	}
	if c, ok := m.Color(); ok {
		return c, true
	}
	c := g.pool.Allocate()
	m.SetColor(c)
	return c, true
}

// ReleaseColor returns the tab's color to the pool and clears it on the
// layout, e.g. when the layout reverts to a single panel. No-op if the tab
// has no layout or no color.
func (g *Manager) ReleaseColor(tab TabID) {
	m, ok := g.layouts[tab]
	if !ok {
		return
	}
	if c, ok := m.Color(); ok {
		g.pool.Release(c)
		m.ClearColor()
	}
}

// TabColor returns the color of the tab's split container, if any.
func (g *Manager) TabColor(tab TabID) (ColorID, bool) {
	m, ok := g.layouts[tab]
	if !ok {
		return 0, false
	}
	return m.Color()
}

// IsSplit reports whether the tab's layout has more than one panel.
func (g *Manager) IsSplit(tab TabID) bool {
	m, ok := g.layouts[tab]
	return ok && m.IsSplit()
}

// PanelCount returns the number of panels in the tab's layout, or 0 if the
// tab has none.
func (g *Manager) PanelCount(tab TabID) int {
	m, ok := g.layouts[tab]
	if !ok {
		return 0
	}
	return m.PanelCount()
}

// TabCount returns the number of tabs with layouts.
func (g *Manager) TabCount() int {
	return len(g.layouts)
}

// Pool exposes the shared color pool for queries.
func (g *Manager) Pool() *ColorPool {
	return g.pool
}
