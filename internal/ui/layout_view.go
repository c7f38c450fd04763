package ui

import (
	"github.com/charmbracelet/lipgloss"

	"conndeck/internal/split"
	"conndeck/internal/ui/textutil"
)

// SessionLabeler resolves a session ID to the title shown in its panel.
// Returning "" renders the panel as empty.
type SessionLabeler func(split.SessionID) string

// minPanelCells is the smallest width or height a panel cell can shrink to
// before the divider position stops being honored.
const minPanelCells = 3

// RenderLayout renders a tab's layout into a width x height block. Split
// containers get a border in the tab's palette color; the focused panel's
// border is highlighted.
func RenderLayout(m *split.Layout, width, height int, labeler SessionLabeler) string {
	if m == nil || width < minPanelCells || height < minPanelCells {
		return ""
	}
	if !m.IsSplit() {
		single := m.FirstPanel()
		return renderLeaf(&single, width, height, m.FocusedPanel(), labeler)
	}

	frame := Styles.Panel
	if c, ok := m.Color(); ok {
		frame = frame.BorderForeground(ContainerColor(c))
	}
	inner := renderNode(m.Root(), width-2, height-2, m.FocusedPanel(), labeler)
	return frame.Render(inner)
}

func renderNode(n split.Node, width, height int, focused split.PanelID, labeler SessionLabeler) string {
	switch node := n.(type) {
	case *split.Leaf:
		return renderLeaf(node, width, height, focused, labeler)
	case *split.Split:
		if node.Direction == split.Horizontal {
			// Top and bottom halves.
			firstH := clampCells(int(float64(height)*node.Position), height)
			first := renderNode(node.First, width, firstH, focused, labeler)
			second := renderNode(node.Second, width, height-firstH, focused, labeler)
			return lipgloss.JoinVertical(lipgloss.Left, first, second)
		}
		// Left and right halves.
		firstW := clampCells(int(float64(width)*node.Position), width)
		first := renderNode(node.First, firstW, height, focused, labeler)
		second := renderNode(node.Second, width-firstW, height, focused, labeler)
		return lipgloss.JoinHorizontal(lipgloss.Top, first, second)
	}
	return ""
}

func renderLeaf(leaf *split.Leaf, width, height int, focused split.PanelID, labeler SessionLabeler) string {
	style := Styles.Panel
	if leaf.ID == focused {
		style = Styles.PanelFocus
	}
	innerW, innerH := width-2, height-2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	label := ""
	if leaf.Occupied() && labeler != nil {
		label = labeler(leaf.Session)
	}
	var content string
	if label == "" {
		content = Styles.Empty.Render("empty")
	} else {
		content = Styles.Normal.Render(textutil.Truncate(label, innerW))
	}

	return style.
		Width(innerW).
		Height(innerH).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// clampCells keeps a divider from squeezing either side below minPanelCells.
func clampCells(first, total int) int {
	if first < minPanelCells {
		first = minPanelCells
	}
	if first > total-minPanelCells {
		first = total - minPanelCells
	}
	if first < 0 {
		first = 0
	}
	return first
}
