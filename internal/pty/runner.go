// Package pty spawns local shell sessions in pseudo-terminals. Panels
// displaying a local session read and write through the ReadWriteCloser
// returned by Start; tmux-backed sessions never touch this package.
package pty

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size represents terminal dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Runner is the interface for spawning and controlling a PTY.
// Implementations can be swapped (e.g. creack/pty, or a mock for tests).
type Runner interface {
	Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

var _ Runner = (*CreackPTY)(nil)

// Start spawns cmd in a PTY with the given size. Cancellation is handled
// by the caller closing the returned ReadWriteCloser.
func (c *CreackPTY) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	ws := &pty.Winsize{Rows: size.Rows, Cols: size.Cols}
	f, err := pty.StartWithSize(cmd, ws)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Resize resizes the PTY. The rwc must be the *os.File returned by
// Start; other types are a no-op.
func (c *CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// DefaultShell returns the user's shell command, falling back to /bin/sh.
func DefaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

// NewShellCommand builds the exec.Cmd for a local session. An empty
// command runs the default interactive shell.
func NewShellCommand(ctx context.Context, command, workDir string) *exec.Cmd {
	var cmd *exec.Cmd
	if command == "" {
		cmd = exec.CommandContext(ctx, DefaultShell())
	} else {
		cmd = exec.CommandContext(ctx, DefaultShell(), "-c", command)
	}
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	return cmd
}
