// Package session owns the registry of terminal/remote sessions displayed
// in layout panels. The layout engine references sessions only by ID and
// never manages their lifecycle; the registry is where eviction reports
// and removal results from the layout get acted on. Sessions backed by
// tmux panes can be pruned via a liveness check; it lives on the app model
// so it survives tab switches.
package session

import (
	"fmt"
	"sync"
	"time"

	"conndeck/internal/split"
)

// Kind distinguishes how a session's terminal is hosted.
type Kind string

const (
	// KindLocal is a local shell spawned in a PTY owned by this process.
	KindLocal Kind = "local"
	// KindTmux is a session hosted in an external tmux pane.
	KindTmux Kind = "tmux"
)

// Session is one registered connection or shell.
type Session struct {
	ID        split.SessionID
	Kind      Kind
	Title     string
	Command   string // command line the session runs
	PaneID    string // tmux pane ID (e.g. "%42"); empty for local sessions
	Detached  bool   // true when the session is alive but not displayed
	CreatedAt time.Time
}

// LivenessChecker returns the set of currently live tmux pane IDs.
// In production this calls tmux.ListPaneIDs(); tests can inject a stub.
type LivenessChecker func() (map[string]bool, error)

// Registry tracks all sessions in the process. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[split.SessionID]*Session
	liveness LivenessChecker
}

// New creates a Registry with the given liveness checker.
// If liveness is nil, Prune becomes a no-op.
func New(liveness LivenessChecker) *Registry {
	return &Registry{
		sessions: make(map[split.SessionID]*Session),
		liveness: liveness,
	}
}

// Register mints an ID and records a new session.
func (r *Registry) Register(kind Kind, title, command, paneID string) split.SessionID {
	id := split.NewSessionID()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &Session{
		ID:        id,
		Kind:      kind,
		Title:     title,
		Command:   command,
		PaneID:    paneID,
		CreatedAt: time.Now(),
	}
	return id
}

// Get returns a copy of the session.
func (r *Registry) Get(id split.SessionID) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Remove drops a session from the registry. Returns true if it existed.
// The caller is responsible for tearing down the backing pane or PTY.
func (r *Registry) Remove(id split.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Detach marks a session as no longer displayed, e.g. after the layout
// reported it evicted or returned it from a panel removal. The session
// stays alive; detaching is how "displaced, not terminated" is recorded.
func (r *Registry) Detach(id split.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return fmt.Errorf("detach: %w: %s", split.ErrSessionNotFound, id)
	}
	s.Detached = true
	return nil
}

// Attach clears the detached flag when a session is placed in a panel.
func (r *Registry) Attach(id split.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return fmt.Errorf("attach: %w: %s", split.ErrSessionNotFound, id)
	}
	s.Detached = false
	return nil
}

// DetachedSessions returns copies of all sessions that are alive but
// not displayed in any panel.
func (r *Registry) DetachedSessions() []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Session
	for _, s := range r.sessions {
		if s.Detached {
			out = append(out, *s)
		}
	}
	return out
}

// All returns copies of every registered session.
func (r *Registry) All() []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune removes tmux-backed sessions whose pane has died. Local sessions
// are never pruned here; their PTY lifetime is handled by the UI.
// Returns the number of sessions pruned.
func (r *Registry) Prune() (int, error) {
	if r.liveness == nil {
		return 0, nil
	}
	live, err := r.liveness()
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := 0
	for id, s := range r.sessions {
		if s.Kind == KindTmux && !live[s.PaneID] {
			delete(r.sessions, id)
			pruned++
		}
	}
	return pruned, nil
}
