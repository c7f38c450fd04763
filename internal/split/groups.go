package split

// GroupManager assigns palette colors to named tab groups (for example
// "Production" or "Staging") so grouped tabs read as related. Unlike the
// ColorPool it hands out stable assignments: the same group name always
// maps to the same palette index for the lifetime of the manager, and
// indices simply wrap when there are more groups than palette entries.
type GroupManager struct {
	groups map[string]int
	next   int
}

// NewGroupManager creates an empty group manager.
func NewGroupManager() *GroupManager {
	return &GroupManager{groups: make(map[string]int)}
}

// GetOrAssignColor returns the palette index for the group, assigning the
// next sequential index on first sight of the name.
func (g *GroupManager) GetOrAssignColor(name string) int {
	if idx, ok := g.groups[name]; ok {
		return idx
	}
	idx := g.next % len(Palette)
	g.next++
	g.groups[name] = idx
	return idx
}

// Color returns the palette index for a group that already has one.
func (g *GroupManager) Color(name string) (int, bool) {
	idx, ok := g.groups[name]
	return idx, ok
}

// RemoveGroup drops the assignment for a name. The index is not recycled;
// re-adding the name assigns the next sequential color.
func (g *GroupManager) RemoveGroup(name string) {
	delete(g.groups, name)
}

// GroupNames returns all registered group names in no particular order.
func (g *GroupManager) GroupNames() []string {
	names := make([]string, 0, len(g.groups))
	for name := range g.groups {
		names = append(names, name)
	}
	return names
}

// GroupCount returns the number of registered groups.
func (g *GroupManager) GroupCount() int {
	return len(g.groups)
}
