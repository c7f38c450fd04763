package ui

import (
	"bytes"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"conndeck/internal/pty"
)

// TerminalOutputMsg carries bytes read from a session's PTY for display.
type TerminalOutputMsg struct {
	Data []byte
}

// TerminalView is an overlay attached to a local session's PTY. Keys pass
// through to the shell; output accumulates in a viewport. Esc returns to
// the workspace without terminating the session, so the view is cached per
// session and reattached on re-entry.
type TerminalView struct {
	title     string
	ptyRunner pty.Runner
	ptmx      io.ReadWriteCloser
	content   *bytes.Buffer
	viewport  viewport.Model
	outputCh  chan []byte
	reading   bool
}

var _ View = (*TerminalView)(nil)

const defaultTermWidth = 70
const defaultTermHeight = 18

// NewTerminalView attaches a view to an already-running PTY.
func NewTerminalView(title string, runner pty.Runner, ptmx io.ReadWriteCloser) *TerminalView {
	vp := viewport.New(defaultTermWidth, defaultTermHeight)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1)
	return &TerminalView{
		title:     title,
		ptyRunner: runner,
		ptmx:      ptmx,
		content:   &bytes.Buffer{},
		viewport:  vp,
		outputCh:  make(chan []byte, 64),
	}
}

// Init implements View. Starts the PTY reader once; reattaching an already
// reading view just resumes draining the output channel.
func (s *TerminalView) Init() tea.Cmd {
	if s.ptmx == nil {
		s.content.WriteString("session has no terminal\r\n")
		s.refreshViewport()
		return nil
	}
	if !s.reading {
		s.reading = true
		go func() {
			buf := make([]byte, 256)
			for {
				n, err := s.ptmx.Read(buf)
				if n > 0 {
					cp := make([]byte, n)
					copy(cp, buf[:n])
					select {
					case s.outputCh <- cp:
					default:
						// Channel full, drop (avoid blocking)
					}
				}
				if err != nil {
					close(s.outputCh)
					return
				}
			}
		}()
	}
	return s.waitForOutput()
}

func (s *TerminalView) waitForOutput() tea.Cmd {
	return func() tea.Msg {
		data, ok := <-s.outputCh
		if !ok {
			return nil
		}
		return TerminalOutputMsg{Data: data}
	}
}

// Update implements View.
func (s *TerminalView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case TerminalOutputMsg:
		s.content.Write(msg.Data)
		s.refreshViewport()
		s.viewport.GotoBottom()
		return s, s.waitForOutput()
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return DismissOverlayMsg{} }
		}
		if s.ptmx != nil {
			if b := keyToPTYBytes(msg); len(b) > 0 {
				s.ptmx.Write(b)
			}
		}
		return s, s.waitForOutput()
	case tea.WindowSizeMsg:
		w := msg.Width - 4
		h := msg.Height/2 + 4
		if w < 40 {
			w = 40
		}
		if h < 12 {
			h = 12
		}
		s.viewport.Width = w
		s.viewport.Height = h
		if s.ptmx != nil && s.ptyRunner != nil {
			s.ptyRunner.Resize(s.ptmx, pty.Size{Rows: uint16(h), Cols: uint16(w)})
		}
		s.refreshViewport()
		return s, s.waitForOutput()
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, tea.Batch(cmd, s.waitForOutput())
}

// View implements View.
func (s *TerminalView) View() string {
	header := Styles.Title.Render(s.title) + Styles.Hint.Render("  Esc: back to workspace")
	return header + "\n" + s.viewport.View()
}

func (s *TerminalView) refreshViewport() {
	s.viewport.SetContent(s.content.String())
}

// Close releases the PTY. Call when the session itself is terminated.
func (s *TerminalView) Close() error {
	if s.ptmx != nil {
		return s.ptmx.Close()
	}
	return nil
}

// keyToPTYBytes converts a Bubble Tea KeyMsg to bytes the PTY expects.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte{0x1b, '[', 'A'}
	case tea.KeyDown:
		return []byte{0x1b, '[', 'B'}
	case tea.KeyRight:
		return []byte{0x1b, '[', 'C'}
	case tea.KeyLeft:
		return []byte{0x1b, '[', 'D'}
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	default:
		if len(msg.Runes) > 0 {
			return []byte(string(msg.Runes))
		}
		return nil
	}
}
