package ui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"conndeck/internal/pty"
	"conndeck/internal/session"
	"conndeck/internal/split"
	"conndeck/internal/telemetry"
	"conndeck/internal/tmux"
)

// SplitMsg divides the focused panel of the active tab.
type SplitMsg struct {
	Dir split.Direction
}

// ClosePanelMsg removes the focused panel, detaching its session.
type ClosePanelMsg struct{}

// KillSessionMsg terminates the focused panel's session outright.
type KillSessionMsg struct{}

// CycleTabGroupMsg advances the active tab through the named groups.
type CycleTabGroupMsg struct{}

// FocusNextMsg and FocusPrevMsg cycle panel focus in tree order.
type FocusNextMsg struct{}
type FocusPrevMsg struct{}

// NewTabMsg, CloseTabMsg, NextTabMsg, PrevTabMsg manage the tab strip.
type NewTabMsg struct{}
type CloseTabMsg struct{}
type NextTabMsg struct{}
type PrevTabMsg struct{}

// NewSessionMsg starts a session and places it in the focused panel.
type NewSessionMsg struct {
	Kind session.Kind
}

// OpenPickerMsg opens the detached-session picker overlay.
type OpenPickerMsg struct{}

// OpenTerminalMsg attaches to the focused panel's local session.
type OpenTerminalMsg struct{}

// AdjustSplitMsg nudges the divider of the split enclosing the focused panel.
type AdjustSplitMsg struct {
	Delta float64
}

// AppModel is the root model: a tab strip of split layouts over a shared
// session registry. tmux operations are injected as functions so tests can
// run without a tmux server.
type AppModel struct {
	Mode       AppMode
	Manager    *split.Manager
	Sessions   *session.Registry
	Groups     *split.GroupManager
	PTYRunner  pty.Runner
	Telemetry  *telemetry.Telemetry
	KeyHandler *KeyHandler

	SpawnTmux  func(workDir, command string) (string, error)
	HideTmux   func(paneID string) error
	JoinTmux   func(paneID string) error
	KillTmux   func(paneID string) error
	SelectTmux func(paneID string) error

	Tabs      []split.TabID
	Active    int
	tabGroups map[split.TabID]string

	picker    *SessionPickerView
	terminal  *TerminalView
	terminals map[split.SessionID]*TerminalView
	ptys      map[split.SessionID]io.ReadWriteCloser

	width  int
	height int
	status string
}

// NewAppModel creates the root application model with one tab.
func NewAppModel(sessions *session.Registry, tel *telemetry.Telemetry) *AppModel {
	reg := NewKeybindRegistry()
	m := &AppModel{
		Mode:       ModeWorkspace,
		Manager:    split.NewManager(),
		Sessions:   sessions,
		Groups:     split.NewGroupManager(),
		PTYRunner:  &pty.CreackPTY{},
		Telemetry:  tel,
		SpawnTmux:  tmux.SpawnPane,
		HideTmux:   tmux.HidePane,
		JoinTmux:   tmux.JoinPane,
		KillTmux:   tmux.KillPane,
		SelectTmux: tmux.SelectPane,
		tabGroups:  make(map[split.TabID]string),
		terminals:  make(map[split.SessionID]*TerminalView),
		ptys:       make(map[split.SessionID]io.ReadWriteCloser),
	}

	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC s h", msgCmd(SplitMsg{Dir: split.Horizontal}), "Split top/bottom")
	reg.BindWithDesc("SPC s v", msgCmd(SplitMsg{Dir: split.Vertical}), "Split left/right")
	reg.BindWithDesc("SPC s c", msgCmd(ClosePanelMsg{}), "Close panel")
	reg.BindWithDesc("SPC s k", msgCmd(KillSessionMsg{}), "Kill session")
	reg.BindWithDesc("SPC s ,", msgCmd(AdjustSplitMsg{Delta: -0.05}), "Move divider back")
	reg.BindWithDesc("SPC s .", msgCmd(AdjustSplitMsg{Delta: 0.05}), "Move divider forward")
	reg.BindWithDesc("tab", msgCmd(FocusNextMsg{}), "Next panel")
	reg.BindWithDesc("shift+tab", msgCmd(FocusPrevMsg{}), "Previous panel")
	reg.BindWithDesc("SPC t n", msgCmd(NewTabMsg{}), "New tab")
	reg.BindWithDesc("SPC t c", msgCmd(CloseTabMsg{}), "Close tab")
	reg.BindWithDesc("SPC t g", msgCmd(CycleTabGroupMsg{}), "Cycle tab group")
	reg.BindWithDesc("]", msgCmd(NextTabMsg{}), "Next tab")
	reg.BindWithDesc("[", msgCmd(PrevTabMsg{}), "Previous tab")
	reg.BindWithDesc("SPC n s", msgCmd(NewSessionMsg{Kind: session.KindLocal}), "New shell")
	reg.BindWithDesc("SPC n t", msgCmd(NewSessionMsg{Kind: session.KindTmux}), "New tmux pane")
	reg.BindWithDesc("SPC p", msgCmd(OpenPickerMsg{}), "Pick session")
	reg.BindWithDesc("enter", msgCmd(OpenTerminalMsg{}), "Attach terminal")
	m.KeyHandler = NewKeyHandler(reg)

	first := split.NewTabID()
	m.Tabs = []split.TabID{first}
	m.Manager.GetOrCreate(first)
	return m
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// ActiveTab returns the currently displayed tab.
func (m *AppModel) ActiveTab() split.TabID {
	return m.Tabs[m.Active]
}

// ActiveLayout returns the active tab's layout.
func (m *AppModel) ActiveLayout() *split.Layout {
	return m.Manager.GetOrCreate(m.ActiveTab())
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

var _ tea.Model = (*appModelAdapter)(nil)

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forwardToOverlay(msg)
	case DismissOverlayMsg:
		a.Mode = ModeWorkspace
		a.picker = nil
		a.terminal = nil
		return a, nil
	case PlaceSessionMsg:
		a.Mode = ModeWorkspace
		a.picker = nil
		a.placeInFocused(msg.ID)
		return a, nil
	case SplitMsg:
		a.handleSplit(msg.Dir)
		return a, nil
	case ClosePanelMsg:
		a.handleClosePanel()
		return a, nil
	case KillSessionMsg:
		a.handleKillSession()
		return a, nil
	case CycleTabGroupMsg:
		a.handleCycleTabGroup()
		return a, nil
	case FocusNextMsg:
		a.cycleFocus(1)
		return a, nil
	case FocusPrevMsg:
		a.cycleFocus(-1)
		return a, nil
	case NewTabMsg:
		a.handleNewTab()
		return a, nil
	case CloseTabMsg:
		a.handleCloseTab()
		return a, nil
	case NextTabMsg:
		a.Active = (a.Active + 1) % len(a.Tabs)
		return a, nil
	case PrevTabMsg:
		a.Active = (a.Active - 1 + len(a.Tabs)) % len(a.Tabs)
		return a, nil
	case NewSessionMsg:
		a.handleNewSession(msg.Kind)
		return a, nil
	case OpenPickerMsg:
		// Drop sessions whose tmux pane died so the picker never offers them.
		if _, err := a.Sessions.Prune(); err != nil {
			a.status = err.Error()
		}
		a.Mode = ModeSessionPicker
		a.picker = NewSessionPickerView(a.Sessions.DetachedSessions())
		return a, a.picker.Init()
	case OpenTerminalMsg:
		return a, a.handleOpenTerminal()
	case AdjustSplitMsg:
		a.handleAdjustSplit(msg.Delta)
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.Mode != ModeWorkspace {
			return a, a.forwardToOverlay(msg)
		}
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return a, cmd
		}
		return a, nil
	}
	return a, a.forwardToOverlay(msg)
}

// forwardToOverlay routes a message to the active overlay view, if any.
func (a *appModelAdapter) forwardToOverlay(msg tea.Msg) tea.Cmd {
	switch a.Mode {
	case ModeSessionPicker:
		if a.picker == nil {
			return nil
		}
		v, cmd := a.picker.Update(msg)
		if p, ok := v.(*SessionPickerView); ok {
			a.picker = p
		}
		return cmd
	case ModeTerminal:
		if a.terminal == nil {
			return nil
		}
		v, cmd := a.terminal.Update(msg)
		if t, ok := v.(*TerminalView); ok {
			a.terminal = t
		}
		return cmd
	}
	return nil
}

func (a *AppModel) handleSplit(dir split.Direction) {
	tab := a.ActiveTab()
	_, span := a.Telemetry.StartSpan(context.Background(), "layout.split", telemetry.TabAttr(string(tab)))
	defer span.End()

	layout := a.Manager.GetOrCreate(tab)
	wasSplit := layout.IsSplit()
	if _, err := layout.Split(dir); err != nil {
		a.status = err.Error()
		return
	}
	if !wasSplit {
		a.Manager.AllocateColor(tab)
	}
	a.status = fmt.Sprintf("split %s (%d panels)", dir, layout.PanelCount())
}

func (a *AppModel) handleClosePanel() {
	tab := a.ActiveTab()
	layout := a.Manager.Get(tab)
	if layout == nil {
		return
	}
	focused := layout.FocusedPanel()
	_, span := a.Telemetry.StartSpan(context.Background(), "layout.close_panel",
		telemetry.TabAttr(string(tab)), telemetry.PanelAttr(string(focused)))
	defer span.End()

	sid, err := layout.RemovePanel(focused)
	if err != nil {
		a.status = err.Error()
		return
	}
	if sid != "" {
		a.detachSession(sid)
	}
	if !layout.IsSplit() {
		a.Manager.ReleaseColor(tab)
	}
	a.status = fmt.Sprintf("panel closed (%d left)", layout.PanelCount())
}

// handleKillSession terminates the focused panel's session: the panel is
// left empty, the backing tmux pane or PTY is killed, and the registry
// entry is removed. This is the one path where a session actually dies;
// everywhere else displacement only detaches.
func (a *AppModel) handleKillSession() {
	layout := a.ActiveLayout()
	focused := layout.FocusedPanel()
	sid := layout.PanelSession(focused)
	if sid == "" {
		a.status = "focused panel has no session"
		return
	}
	_, span := a.Telemetry.StartSpan(context.Background(), "session.kill",
		telemetry.PanelAttr(string(focused)), telemetry.SessionAttr(string(sid)))
	defer span.End()

	if _, err := layout.PlaceInPanel(focused, ""); err != nil {
		a.status = err.Error()
		return
	}
	if s, ok := a.Sessions.Get(sid); ok && s.Kind == session.KindTmux && a.KillTmux != nil {
		if err := a.KillTmux(s.PaneID); err != nil {
			a.status = err.Error()
		}
	}
	if ptmx, ok := a.ptys[sid]; ok {
		ptmx.Close()
		delete(a.ptys, sid)
		delete(a.terminals, sid)
	}
	a.Sessions.Remove(sid)
	a.status = "session terminated"
}

// tabGroupNames is the cycle order for SPC t g; after the last name the
// tab returns to ungrouped.
var tabGroupNames = []string{"Production", "Staging", "Development"}

// handleCycleTabGroup advances the active tab through the named groups.
// Group colors come from the GroupManager, so two tabs in the same group
// always share a color.
func (a *AppModel) handleCycleTabGroup() {
	tab := a.ActiveTab()
	current := a.tabGroups[tab]

	next := ""
	if current == "" {
		next = tabGroupNames[0]
	} else {
		for i, name := range tabGroupNames {
			if name == current && i+1 < len(tabGroupNames) {
				next = tabGroupNames[i+1]
				break
			}
		}
	}

	if next == "" {
		delete(a.tabGroups, tab)
		a.dropGroupIfUnused(current)
		a.status = "tab ungrouped"
		return
	}
	a.tabGroups[tab] = next
	a.Groups.GetOrAssignColor(next)
	a.dropGroupIfUnused(current)
	a.status = "tab group: " + next
}

// dropGroupIfUnused releases a group's color assignment once no tab
// references the name.
func (a *AppModel) dropGroupIfUnused(name string) {
	if name == "" {
		return
	}
	for _, g := range a.tabGroups {
		if g == name {
			return
		}
	}
	a.Groups.RemoveGroup(name)
}

func (a *AppModel) cycleFocus(step int) {
	layout := a.ActiveLayout()
	ids := layout.PanelIDs()
	if len(ids) < 2 {
		return
	}
	cur := 0
	for i, id := range ids {
		if id == layout.FocusedPanel() {
			cur = i
			break
		}
	}
	next := (cur + step + len(ids)) % len(ids)
	if err := layout.SetFocus(ids[next]); err != nil {
		a.status = err.Error()
	}
}

func (a *AppModel) handleNewTab() {
	id := split.NewTabID()
	a.Tabs = append(a.Tabs, id)
	a.Active = len(a.Tabs) - 1
	a.Manager.GetOrCreate(id)
}

func (a *AppModel) handleCloseTab() {
	if len(a.Tabs) == 1 {
		a.status = "cannot close the last tab"
		return
	}
	tab := a.ActiveTab()
	layout := a.Manager.Get(tab)
	if layout != nil {
		// Sessions survive their tab; they go back to the detached pool.
		for _, id := range layout.PanelIDs() {
			if sid := layout.PanelSession(id); sid != "" {
				a.detachSession(sid)
			}
		}
	}
	a.Manager.Remove(tab)
	if group := a.tabGroups[tab]; group != "" {
		delete(a.tabGroups, tab)
		a.dropGroupIfUnused(group)
	}
	a.Tabs = append(a.Tabs[:a.Active], a.Tabs[a.Active+1:]...)
	if a.Active >= len(a.Tabs) {
		a.Active = len(a.Tabs) - 1
	}
}

func (a *AppModel) handleNewSession(kind session.Kind) {
	_, span := a.Telemetry.StartSpan(context.Background(), "session.new")
	defer span.End()

	switch kind {
	case session.KindLocal:
		cmd := pty.NewShellCommand(context.Background(), "", "")
		ptmx, err := a.PTYRunner.Start(context.Background(), cmd, pty.Size{Rows: defaultTermHeight, Cols: defaultTermWidth})
		if err != nil {
			a.status = "spawn shell: " + err.Error()
			return
		}
		id := a.Sessions.Register(session.KindLocal, "shell", pty.DefaultShell(), "")
		a.ptys[id] = ptmx
		a.placeInFocused(id)
	case session.KindTmux:
		if !tmux.InsideTmux() {
			a.status = "not running inside tmux"
			return
		}
		paneID, err := a.SpawnTmux("", "")
		if err != nil {
			a.status = err.Error()
			return
		}
		id := a.Sessions.Register(session.KindTmux, "tmux pane", "", paneID)
		a.placeInFocused(id)
	}
}

// placeInFocused puts the session in the active tab's focused panel. A
// session already displayed there is detached, not terminated.
func (a *AppModel) placeInFocused(id split.SessionID) {
	layout := a.ActiveLayout()
	focused := layout.FocusedPanel()
	_, span := a.Telemetry.StartSpan(context.Background(), "layout.place_session",
		telemetry.PanelAttr(string(focused)), telemetry.SessionAttr(string(id)))
	defer span.End()

	res, err := layout.PlaceInPanel(focused, id)
	if err != nil {
		a.status = err.Error()
		return
	}
	if res.IsEviction() && res.Evicted != id {
		a.detachSession(res.Evicted)
	}
	if err := a.Sessions.Attach(id); err != nil {
		a.status = err.Error()
		return
	}
	if s, ok := a.Sessions.Get(id); ok && s.Kind == session.KindTmux && a.JoinTmux != nil {
		if err := a.JoinTmux(s.PaneID); err != nil {
			a.status = err.Error()
		}
	}
}

// detachSession records a displaced session and hides its tmux pane.
func (a *AppModel) detachSession(id split.SessionID) {
	if err := a.Sessions.Detach(id); err != nil {
		a.status = err.Error()
		return
	}
	if s, ok := a.Sessions.Get(id); ok && s.Kind == session.KindTmux && a.HideTmux != nil {
		if err := a.HideTmux(s.PaneID); err != nil {
			a.status = err.Error()
		}
	}
}

func (a *AppModel) handleOpenTerminal() tea.Cmd {
	layout := a.ActiveLayout()
	sid := layout.PanelSession(layout.FocusedPanel())
	if sid == "" {
		a.status = "focused panel has no session"
		return nil
	}
	if s, ok := a.Sessions.Get(sid); ok && s.Kind == session.KindTmux {
		// tmux sessions have no in-app terminal; hand keyboard focus to
		// the pane itself.
		if a.SelectTmux != nil {
			if err := a.SelectTmux(s.PaneID); err != nil {
				a.status = err.Error()
				return nil
			}
		}
		a.status = "focused tmux pane " + s.PaneID
		return nil
	}
	ptmx, ok := a.ptys[sid]
	if !ok {
		a.status = "session has no local terminal"
		return nil
	}
	term, ok := a.terminals[sid]
	if !ok {
		title := "shell"
		if s, found := a.Sessions.Get(sid); found && s.Title != "" {
			title = s.Title
		}
		term = NewTerminalView(title, a.PTYRunner, ptmx)
		a.terminals[sid] = term
	}
	a.terminal = term
	a.Mode = ModeTerminal
	return term.Init()
}

func (a *AppModel) handleAdjustSplit(delta float64) {
	layout := a.ActiveLayout()
	if !layout.IsSplit() {
		a.status = "no split to adjust"
		return
	}
	if err := layout.AdjustSplitPosition(layout.FocusedPanel(), delta); err != nil {
		a.status = err.Error()
	}
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	switch a.Mode {
	case ModeSessionPicker:
		if a.picker != nil {
			return a.renderTabBar() + "\n" + a.picker.View()
		}
	case ModeTerminal:
		if a.terminal != nil {
			return a.renderTabBar() + "\n" + a.terminal.View()
		}
	}

	width, height := a.width, a.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	base := a.renderTabBar() + "\n" +
		RenderLayout(a.ActiveLayout(), width, height-4, a.sessionLabel) + "\n" +
		Styles.Status.Render(a.status)
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler, a.Mode)
	}
	return base
}

func (a *appModelAdapter) renderTabBar() string {
	labels := make([]string, 0, len(a.Tabs))
	for i, tab := range a.Tabs {
		label := fmt.Sprintf("Tab %d", i+1)
		style := Styles.TabIdle
		if i == a.Active {
			style = Styles.TabActive
		}
		// Group color wins over the split container color: grouping is a
		// deliberate labeling, the container color is incidental.
		if group := a.tabGroups[tab]; group != "" {
			label += " [" + group + "]"
			if idx, ok := a.Groups.Color(group); ok {
				style = style.Foreground(ContainerColor(split.ColorID(idx)))
			}
		} else if c, ok := a.Manager.TabColor(tab); ok {
			style = style.Foreground(ContainerColor(c))
		}
		labels = append(labels, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labels...)
}

// sessionLabel resolves a session ID to its panel label.
func (a *AppModel) sessionLabel(id split.SessionID) string {
	s, ok := a.Sessions.Get(id)
	if !ok {
		return string(id)
	}
	if s.Title != "" {
		return s.Title
	}
	return s.Command
}
