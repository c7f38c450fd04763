package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"

	"conndeck/internal/session"
	"conndeck/internal/split"
)

// PlaceSessionMsg asks the app to place a session in the focused panel.
type PlaceSessionMsg struct {
	ID split.SessionID
}

// DismissOverlayMsg closes the active overlay and returns to the workspace.
type DismissOverlayMsg struct{}

// sessionItem adapts a session record to bubbles/list.
type sessionItem struct {
	s session.Session
}

func (i sessionItem) Title() string {
	if i.s.Title != "" {
		return i.s.Title
	}
	if i.s.Command != "" {
		return i.s.Command
	}
	return string(i.s.Kind) + " session"
}

func (i sessionItem) Description() string { return i.s.Command }
func (i sessionItem) FilterValue() string { return i.Title() + " " + i.s.Command }

// SessionPickerView lists detached sessions; enter places the selection in
// the focused panel, esc dismisses.
type SessionPickerView struct {
	list list.Model
}

var _ View = (*SessionPickerView)(nil)

const pickerWidth = 48
const pickerHeight = 14

// NewSessionPickerView builds a picker over the given sessions.
func NewSessionPickerView(sessions []session.Session) *SessionPickerView {
	items := make([]list.Item, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, sessionItem{s: s})
	}
	l := list.New(items, NewCompactListDelegate(), pickerWidth, pickerHeight)
	l.Title = "Detached sessions"
	l.Styles.Title = Styles.Title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return &SessionPickerView{list: l}
}

// Init implements View.
func (v *SessionPickerView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *SessionPickerView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return DismissOverlayMsg{} }
		case "enter":
			item, ok := v.list.SelectedItem().(sessionItem)
			if !ok {
				return v, func() tea.Msg { return DismissOverlayMsg{} }
			}
			id := item.s.ID
			return v, func() tea.Msg { return PlaceSessionMsg{ID: id} }
		}
	}
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View implements View.
func (v *SessionPickerView) View() string {
	if len(v.list.Items()) == 0 {
		return Styles.Box.Render(
			Styles.Title.Render("Detached sessions") + "\n\n" +
				Styles.Empty.Render("none") + "\n\n" +
				Styles.Hint.Render("esc: close"))
	}
	return Styles.Box.Render(v.list.View() + "\n" + Styles.Hint.Render("enter: place in panel  esc: close"))
}
